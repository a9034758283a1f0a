package translate

// genericPass runs the rules of a correction pass or of passes 2 to 4.
// Symbols not matched by any rule are copied through.
func (x *translation) genericPass() error {
	x.st.reset()
	for x.src < len(x.in) {
		id, m, ok, err := x.passRule(x.pass)
		if err != nil {
			return err
		}
		if ok {
			x.appliedRule(id)
			tracer().P("pass", x.pass).Debugf("%d: rule #%d", x.src, id)
			next, err := x.act(x.t.Rule(id), m)
			if err != nil {
				return x.giveUp(err, false)
			}
			if next > x.src {
				x.src = next
				continue
			}
			// a rule which consumes nothing must not stall the pass
		}
		if err := x.copyThrough(x.src, x.src+1); err != nil {
			return x.giveUp(err, false)
		}
		x.src++
	}
	return nil
}
