package review

import (
	"fmt"
	"go/ast"
	"go/token"
	"sort"
	"strings"
)

// Severity ranks how strongly a finding should be acted on.
type Severity string

const (
	SeverityMajor Severity = "major"
	SeverityMinor Severity = "minor"
)

// Finding is one style observation anchored to a source position.
type Finding struct {
	Rule     string
	Severity Severity
	File     string
	Line     int
	Message  string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s:%d [%s] %s: %s", f.File, f.Line, f.Severity, f.Rule, f.Message)
}

// Rule describes one check the reviewer runs over every solution file.
type Rule struct {
	ID       string
	Severity Severity
	Summary  string
	check    func(*pass)
}

// Rules returns the built-in rule set in reporting order.
func Rules() []Rule {
	return []Rule{
		{ID: "doc-exported", Severity: SeverityMinor, Summary: "exported declarations carry a doc comment", check: checkExportedDocs},
		{ID: "panic-call", Severity: SeverityMajor, Summary: "solutions return errors instead of panicking", check: checkPanics},
		{ID: "discarded-error", Severity: SeverityMajor, Summary: "the last result of a call is not thrown away with _", check: checkDiscardedErrors},
		{ID: "long-function", Severity: SeverityMinor, Summary: "function bodies stay short enough to read at once", check: checkLongFunctions},
		{ID: "deep-nesting", Severity: SeverityMinor, Summary: "control flow stays shallow", check: checkNesting},
		{ID: "print-in-solver", Severity: SeverityMinor, Summary: "solutions return answers rather than printing them", check: checkPrints},
		{ID: "global-state", Severity: SeverityMajor, Summary: "memo tables and visited sets are not package-level variables", check: checkGlobalState},
	}
}

// pass carries the state for running one rule over one file.
type pass struct {
	fset     *token.FileSet
	file     *ast.File
	name     string
	opts     Options
	rule     Rule
	findings []Finding
}

func (p *pass) report(pos token.Pos, format string, args ...any) {
	p.findings = append(p.findings, Finding{
		Rule:     p.rule.ID,
		Severity: p.rule.Severity,
		File:     p.name,
		Line:     p.fset.Position(pos).Line,
		Message:  fmt.Sprintf(format, args...),
	})
}

// analyzeFile runs every enabled rule over file and returns findings sorted
// by line.
func analyzeFile(fset *token.FileSet, file *ast.File, name string, opts Options) []Finding {
	var out []Finding
	for _, rule := range Rules() {
		if !opts.enabled(rule.ID) {
			continue
		}
		p := &pass{fset: fset, file: file, name: name, opts: opts, rule: rule}
		rule.check(p)
		out = append(out, p.findings...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

func checkExportedDocs(p *pass) {
	for _, decl := range p.file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if !d.Name.IsExported() || d.Doc != nil {
				continue
			}
			if d.Recv != nil && !exportedReceiver(d.Recv) {
				continue
			}
			p.report(d.Pos(), "exported %s %s has no doc comment", funcKind(d), d.Name.Name)
		case *ast.GenDecl:
			if d.Doc != nil || d.Tok == token.IMPORT {
				continue
			}
			for _, spec := range d.Specs {
				for _, name := range specNames(spec) {
					if name.IsExported() {
						p.report(name.Pos(), "exported %s %s has no doc comment", strings.ToLower(d.Tok.String()), name.Name)
					}
				}
			}
		}
	}
}

func specNames(spec ast.Spec) []*ast.Ident {
	switch s := spec.(type) {
	case *ast.TypeSpec:
		if s.Doc != nil || s.Comment != nil {
			return nil
		}
		return []*ast.Ident{s.Name}
	case *ast.ValueSpec:
		if s.Doc != nil || s.Comment != nil {
			return nil
		}
		return s.Names
	}
	return nil
}

func exportedReceiver(recv *ast.FieldList) bool {
	if len(recv.List) == 0 {
		return false
	}
	expr := recv.List[0].Type
	if star, ok := expr.(*ast.StarExpr); ok {
		expr = star.X
	}
	switch t := expr.(type) {
	case *ast.Ident:
		return t.IsExported()
	case *ast.IndexExpr:
		if id, ok := t.X.(*ast.Ident); ok {
			return id.IsExported()
		}
	}
	return false
}

func funcKind(d *ast.FuncDecl) string {
	if d.Recv != nil {
		return "method"
	}
	return "function"
}

func checkPanics(p *pass) {
	ast.Inspect(p.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		if id, ok := call.Fun.(*ast.Ident); ok && id.Name == "panic" {
			p.report(call.Pos(), "panic in solution code; return an error to the harness instead")
		}
		return true
	})
}

func checkDiscardedErrors(p *pass) {
	ast.Inspect(p.file, func(n ast.Node) bool {
		assign, ok := n.(*ast.AssignStmt)
		if !ok || len(assign.Lhs) < 2 || len(assign.Rhs) != 1 {
			return true
		}
		call, ok := assign.Rhs[0].(*ast.CallExpr)
		if !ok {
			return true
		}
		if last, ok := assign.Lhs[len(assign.Lhs)-1].(*ast.Ident); ok && last.Name == "_" {
			p.report(assign.Pos(), "result of %s discarded with _; malformed input goes unnoticed", callName(call))
		}
		return true
	})
}

func callName(call *ast.CallExpr) string {
	switch fn := call.Fun.(type) {
	case *ast.Ident:
		return fn.Name
	case *ast.SelectorExpr:
		if x, ok := fn.X.(*ast.Ident); ok {
			return x.Name + "." + fn.Sel.Name
		}
		return fn.Sel.Name
	}
	return "call"
}

func checkLongFunctions(p *pass) {
	limit := p.opts.MaxFunctionLines
	if limit <= 0 {
		return
	}
	for _, decl := range p.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		open := p.fset.Position(fn.Body.Lbrace).Line
		closing := p.fset.Position(fn.Body.Rbrace).Line
		if lines := closing - open - 1; lines > limit {
			p.report(fn.Pos(), "%s is %d lines long (limit %d); split parsing from solving", fn.Name.Name, lines, limit)
		}
	}
}

func checkNesting(p *pass) {
	limit := p.opts.MaxNesting
	if limit <= 0 {
		return
	}
	for _, decl := range p.file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Body == nil {
			continue
		}
		deepest := 0
		ast.Walk(nestingVisitor{deepest: &deepest}, fn.Body)
		if deepest > limit {
			p.report(fn.Pos(), "%s nests control flow %d levels deep (limit %d)", fn.Name.Name, deepest, limit)
		}
	}
}

// nestingVisitor tracks how many control statements enclose the node being
// visited. An else-if continues its chain at the same depth.
type nestingVisitor struct {
	depth   int
	deepest *int
}

func (v nestingVisitor) enter() nestingVisitor {
	child := nestingVisitor{depth: v.depth + 1, deepest: v.deepest}
	if child.depth > *v.deepest {
		*v.deepest = child.depth
	}
	return child
}

func (v nestingVisitor) Visit(n ast.Node) ast.Visitor {
	switch s := n.(type) {
	case *ast.IfStmt:
		child := v.enter()
		if s.Init != nil {
			ast.Walk(child, s.Init)
		}
		ast.Walk(child, s.Cond)
		ast.Walk(child, s.Body)
		switch e := s.Else.(type) {
		case nil:
		case *ast.IfStmt:
			ast.Walk(v, e)
		default:
			ast.Walk(child, e)
		}
		return nil
	case *ast.ForStmt, *ast.RangeStmt, *ast.SwitchStmt, *ast.TypeSwitchStmt, *ast.SelectStmt:
		return v.enter()
	}
	return v
}

func checkPrints(p *pass) {
	ast.Inspect(p.file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		switch fn := call.Fun.(type) {
		case *ast.Ident:
			if fn.Name == "print" || fn.Name == "println" {
				p.report(call.Pos(), "builtin %s writes to stderr; return the value instead", fn.Name)
			}
		case *ast.SelectorExpr:
			if x, ok := fn.X.(*ast.Ident); ok && x.Name == "fmt" && strings.HasPrefix(fn.Sel.Name, "Print") {
				p.report(call.Pos(), "fmt.%s in solution code; the harness prints answers", fn.Sel.Name)
			}
		}
		return true
	})
}

func checkGlobalState(p *pass) {
	for _, decl := range p.file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.VAR {
			continue
		}
		for _, spec := range gen.Specs {
			vs := spec.(*ast.ValueSpec)
			kind := collectionKind(vs.Type)
			for _, value := range vs.Values {
				if kind == "" {
					kind = valueKind(value)
				}
			}
			if kind == "" {
				continue
			}
			for _, name := range vs.Names {
				if name.Name == "_" {
					continue
				}
				p.report(name.Pos(), "package-level %s %s keeps state between calls; create it per call", kind, name.Name)
			}
		}
	}
}

func collectionKind(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.MapType:
		return "map"
	case *ast.ArrayType:
		if t.Len == nil {
			return "slice"
		}
	}
	return ""
}

func valueKind(expr ast.Expr) string {
	switch v := expr.(type) {
	case *ast.CompositeLit:
		return collectionKind(v.Type)
	case *ast.CallExpr:
		if id, ok := v.Fun.(*ast.Ident); ok && id.Name == "make" && len(v.Args) > 0 {
			return collectionKind(v.Args[0])
		}
	}
	return ""
}
