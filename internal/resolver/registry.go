package resolver

import (
	"io"
	"sort"

	"github.com/dave/jennifer/jen"
)

const resolverPath = "github.com/cmmoran/apidocgen/internal/resolver"

// GenerateRegistry writes Go source declaring varName as a *Static holding
// types, so a registry can be compiled into a build instead of loaded from
// YAML at run time.
func GenerateRegistry(w io.Writer, pkgName, varName string, types []*StaticType) error {
	sorted := append([]*StaticType(nil), types...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TypeName < sorted[j].TypeName })

	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by apidocgen registry. DO NOT EDIT.")

	entries := make([]jen.Code, 0, len(sorted))
	for _, t := range sorted {
		entries = append(entries, staticTypeLiteral(t))
	}

	f.Commentf("%s resolves the types listed below without loading any packages.", varName)
	f.Var().Id(varName).Op("=").Qual(resolverPath, "NewStatic").CallFunc(func(g *jen.Group) {
		for _, e := range entries {
			g.Add(e)
		}
	})

	return f.Render(w)
}

func staticTypeLiteral(t *StaticType) jen.Code {
	fields := jen.Dict{
		jen.Id("TypeName"): jen.Lit(t.TypeName),
	}
	if len(t.Constants) > 0 {
		fields[jen.Id("Constants")] = jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, c := range t.Constants {
				g.Lit(c)
			}
		})
	}
	if len(t.Nested) > 0 {
		fields[jen.Id("Nested")] = jen.Index().Op("*").Qual(resolverPath, "StaticType").ValuesFunc(func(g *jen.Group) {
			for _, n := range t.Nested {
				g.Add(staticTypeLiteral(n))
			}
		})
	}
	return jen.Op("&").Qual(resolverPath, "StaticType").Values(fields)
}
