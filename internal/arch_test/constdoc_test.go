package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// TestExportedConstsHaveGoDoc verifies that every exported constant in
// internal packages is documented. Enum values in a grouped block may rely on
// their own comment, an inline comment, or a doc comment on the whole block.
func TestExportedConstsHaveGoDoc(t *testing.T) {
	t.Parallel()

	dir := internalDirPath(t)
	for _, pkg := range internalPackages(t) {
		t.Run(pkg, func(t *testing.T) {
			t.Parallel()

			fset := token.NewFileSet()
			for _, file := range goFilesIn(t, filepath.Join(dir, pkg)) {
				node, err := parser.ParseFile(fset, file, nil, parser.ParseComments)
				if err != nil {
					t.Fatalf("parsing %s: %v", file, err)
				}
				for _, name := range undocumentedConsts(node) {
					t.Errorf("%s: exported const %s has no doc comment", filepath.Base(file), name)
				}
			}
		})
	}
}

// undocumentedConsts returns the exported constants in f that carry no doc
// comment.
func undocumentedConsts(f *ast.File) []string {
	var missing []string
	for _, decl := range f.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.CONST {
			continue
		}
		hasBlockDoc := gd.Doc != nil && strings.TrimSpace(gd.Doc.Text()) != ""
		grouped := gd.Lparen.IsValid()

		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, name := range vs.Names {
				if !name.IsExported() {
					continue
				}
				own := vs.Doc != nil && strings.HasPrefix(strings.TrimSpace(vs.Doc.Text()), name.Name)
				inline := vs.Comment != nil && strings.TrimSpace(vs.Comment.Text()) != ""
				if own || inline || (grouped && hasBlockDoc) {
					continue
				}
				if !grouped && hasBlockDoc && strings.HasPrefix(strings.TrimSpace(gd.Doc.Text()), name.Name) {
					continue
				}
				missing = append(missing, name.Name)
			}
		}
	}
	return missing
}

func TestUndocumentedConstsDetection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want []string
	}{
		{
			name: "bare_enum_block",
			src:  "package p\ntype S string\nconst (\n\tWeak S = \"weak\"\n\tStrong S = \"strong\"\n)\n",
			want: []string{"Weak", "Strong"},
		},
		{
			name: "individual_docs",
			src:  "package p\nconst (\n\t// Weak is a hint.\n\tWeak = 1\n\t// Strong is firm.\n\tStrong = 2\n)\n",
		},
		{
			name: "block_doc",
			src:  "package p\n// Levels of firmness.\nconst (\n\tWeak = 1\n\tStrong = 2\n)\n",
		},
		{
			name: "inline_comment",
			src:  "package p\nconst (\n\tWeak = 1 // hint\n)\n",
		},
		{
			name: "standalone_doc_must_name_const",
			src:  "package p\n// a limit.\nconst Max = 3\n",
			want: []string{"Max"},
		},
		{
			name: "unexported_ignored",
			src:  "package p\nconst max = 3\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			f, err := parser.ParseFile(token.NewFileSet(), "p.go", tc.src, parser.ParseComments)
			if err != nil {
				t.Fatalf("parsing: %v", err)
			}
			got := undocumentedConsts(f)
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("undocumentedConsts = %v, want %v", got, tc.want)
			}
		})
	}
}
