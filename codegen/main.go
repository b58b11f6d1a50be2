package main

import (
	"fmt"
	"os"
	"strings"
)

func typeParams(n int, result bool) string {
	params := []string{}
	for i := 1; i <= n; i++ {
		params = append(params, fmt.Sprintf("A%d any", i))
	}
	if result {
		params = append(params, "R any")
	}
	return strings.Join(params, ", ")
}

func argExtraction(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString(fmt.Sprintf("\t\ta%d, err := argOf[A%d](f, %d, vals)\n", i, i, i-1))
		sb.WriteString("\t\tif err != nil {\n\t\t\treturn nil, err\n\t\t}\n")
	}
	return sb.String()
}

func argRefs(n int, ctx bool) string {
	refs := []string{}
	if ctx {
		refs = append(refs, "ctx")
	}
	for i := 1; i <= n; i++ {
		refs = append(refs, fmt.Sprintf("a%d", i))
	}
	return strings.Join(refs, ", ")
}

func paramDecls(n int) string {
	var sb strings.Builder
	for i := 1; i <= n; i++ {
		sb.WriteString(fmt.Sprintf("\tp%d string,\n", i))
	}
	return sb.String()
}

func paramNames(n int) string {
	names := []string{}
	for i := 1; i <= n; i++ {
		names = append(names, fmt.Sprintf("p%d", i))
	}
	return strings.Join(names, ", ")
}

func fnArgTypes(n int, ctx bool) string {
	types := []string{}
	if ctx {
		types = append(types, "context.Context")
	}
	for i := 1; i <= n; i++ {
		types = append(types, fmt.Sprintf("A%d", i))
	}
	return strings.Join(types, ", ")
}

func generateFn(n int, ctx bool) string {
	var sb strings.Builder

	name := "Fn"
	if ctx {
		name = "CtxFn"
	}

	sb.WriteString(fmt.Sprintf("func %s%d[%s](\n", name, n, typeParams(n, true)))
	sb.WriteString(paramDecls(n))
	sb.WriteString(fmt.Sprintf("\tfn func(%s) (R, error),\n", fnArgTypes(n, ctx)))
	sb.WriteString("\topts ...FuncOption,\n")
	sb.WriteString(") *Func {\n")
	sb.WriteString("\tvar f *Func\n")
	sb.WriteString(fmt.Sprintf("\tf = newFunc(fn, []string{%s}, func(ctx context.Context, vals Values) (any, error) {\n", paramNames(n)))
	sb.WriteString(argExtraction(n))
	sb.WriteString(fmt.Sprintf("\t\treturn fn(%s)\n", argRefs(n, ctx)))
	sb.WriteString("\t}, opts)\n")
	sb.WriteString("\treturn f\n")
	sb.WriteString("}\n\n")

	return sb.String()
}

func generateCheck(n int) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("func Check%d[%s](\n", n, typeParams(n, false)))
	sb.WriteString(paramDecls(n))
	sb.WriteString(fmt.Sprintf("\tfn func(%s) error,\n", fnArgTypes(n, false)))
	sb.WriteString("\topts ...FuncOption,\n")
	sb.WriteString(") *Func {\n")
	sb.WriteString("\tvar f *Func\n")
	sb.WriteString(fmt.Sprintf("\tf = newFunc(fn, []string{%s}, func(ctx context.Context, vals Values) (any, error) {\n", paramNames(n)))
	sb.WriteString(argExtraction(n))
	sb.WriteString(fmt.Sprintf("\t\treturn nil, fn(%s)\n", argRefs(n, false)))
	sb.WriteString("\t}, opts)\n")
	sb.WriteString("\treturn f\n")
	sb.WriteString("}\n\n")

	return sb.String()
}

func main() {
	var output strings.Builder

	for i := 0; i <= 6; i++ {
		output.WriteString(generateFn(i, false))
	}
	for i := 0; i <= 3; i++ {
		output.WriteString(generateFn(i, true))
	}
	for i := 1; i <= 3; i++ {
		output.WriteString(generateCheck(i))
	}

	fmt.Print(output.String())

	if len(os.Args) > 1 && os.Args[1] == "-w" {
		file, err := os.OpenFile("fn_generated.go", os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			panic(err)
		}
		defer file.Close()

		file.WriteString("package argfn\n\n")
		file.WriteString("//go:generate go run codegen/main.go -w\n\n")
		file.WriteString("import \"context\"\n\n")
		file.WriteString(output.String())
		fmt.Println("Generated fn_generated.go")
	}
}
