// Package tree renders the structure of a layout tree rather than its
// computed geometry.
//
// [ToDOT] and [RenderSVG] produce a Graphviz diagram of containers and
// widgets; [Render] prints the same tree for a terminal.
//
//	dot := tree.ToDOT(doc.Root, tree.Options{Detailed: true})
//	svg, err := tree.RenderSVG(ctx, dot)
//	fmt.Println(tree.Render(doc.Root))
package tree
