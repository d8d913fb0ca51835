// Package vtest provides testing helpers for code built on vdom.
//
// # Render Assertions
//
// Assert on rendered HTML output of a virtual tree:
//
//	vtest.ExpectContains(t, view(), "Welcome")
//	vtest.ExpectNotContains(t, view(), "Login")
//	vtest.ExpectAttribute(t, view(), "class", "btn-primary")
//
// # Harness
//
// A Harness mounts a tree and checks after every update that the real tree
// serializes exactly like the virtual tree:
//
//	func TestCounter(t *testing.T) {
//	    count := 0
//	    view := func() *vdom.VNode {
//	        return vdom.Div(
//	            vdom.Button(vdom.ID("inc"), vdom.OnClick(func() { count++ })),
//	            vdom.Span(vdom.Textf("%d", count)),
//	        )
//	    }
//	    h := vtest.NewHarness(t, view())
//	    h.Click(h.ByID("inc"))
//	    h.Update(view())
//	    vtest.ExpectContains(t, h.Current(), "<span>1</span>")
//	}
package vtest
