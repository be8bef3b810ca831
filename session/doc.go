// Package session drives one conversation with an A2UI-capable agent.
//
// A Session owns the surface processor and the renderer for its
// conversation. Each Send builds a message/stream request from the prompt
// and the current widget values, consumes the whole event stream, and only
// then replaces the rendered UI with the reply:
//
//	s := session.New("http://localhost:10002")
//	defer s.Close()
//
//	reply, err := s.Send(ctx, "a watercolor fox")
//	if err != nil {
//		return err
//	}
//	fmt.Println(reply.Text)
//	fmt.Println(s.View(render.ViewOptions{Width: 80}))
//
//	_ = s.Input("size", 1024)
//	reply, err = s.Refine(ctx)
//
// Only one exchange runs at a time; an overlapping Send returns
// genui.ErrBusy. Failed exchanges leave the rendered UI untouched.
package session
