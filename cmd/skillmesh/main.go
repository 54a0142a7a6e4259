// Command skillmesh validates skill relationship models and answers
// compatibility questions about skill selections.
package main

import "github.com/papapumpkin/skillmesh/cmd"

func main() {
	cmd.Execute()
}
