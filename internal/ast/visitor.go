package ast

// Walk traverses node in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: collect every variable read by an instruction
//
//	var names []string
//	ast.Walk(instr, func(n ast.Node) bool {
//	    if id, ok := n.(*ast.Ident); ok {
//	        names = append(names, id.Name)
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *LetInstr:
		Walk(n.Value, fn)
	case *PrintInstr:
		Walk(n.Value, fn)
	case *IfInstr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *Ident, *IntLit, *StrLit,
		*GotoInstr, *InputInstr, *GosubInstr, *ReturnInstr, *EndInstr:
		// Leaves
	}
}

// Reads returns the variable names read by node, in source order.
func Reads(node Node) []string {
	var names []string
	Walk(node, func(n Node) bool {
		if id, ok := n.(*Ident); ok {
			names = append(names, id.Name)
		}
		return true
	})
	return names
}

// Writes returns the variable assigned by in, if any.
func Writes(in Instr) (string, bool) {
	switch n := in.(type) {
	case *LetInstr:
		return n.Name, true
	case *InputInstr:
		return n.Name, true
	default:
		return "", false
	}
}
