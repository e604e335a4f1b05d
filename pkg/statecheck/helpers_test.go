package statecheck_test

import (
	"fmt"
	"testing"

	"github.com/calvinalkan/statecheck/pkg/statecheck"
)

// counter is a value-style SUT: commands take it and return the successor.
// dec subtracts 2 once the counter is above 3, and add drops one unit for
// amounts above 5.
type counter struct {
	N int
}

type counterCmd = statecheck.Command[counter, int]

type incCmd struct{}

func (incCmd) Pre(counter, int) bool { return true }

func (incCmd) ApplySUT(c counter) counter {
	c.N++

	return c
}

func (incCmd) ApplyModel(m int) int { return m + 1 }

func (incCmd) Post(_, c counter, _, m int) bool { return c.N == m }

func (incCmd) String() string { return "Inc" }

type decCmd struct{}

func (decCmd) Pre(_ counter, m int) bool { return m > 0 }

func (decCmd) ApplySUT(c counter) counter {
	if c.N > 3 {
		c.N -= 2
	} else {
		c.N--
	}

	return c
}

func (decCmd) ApplyModel(m int) int { return m - 1 }

func (decCmd) Post(_, c counter, _, m int) bool { return c.N == m }

func (decCmd) Explain(_, c counter, _, m int) string {
	return fmt.Sprintf("model %d, counter %d", m, c.N)
}

func (decCmd) String() string { return "Dec" }

var addPayload = statecheck.Int[int]()

type addCmd struct {
	Amount int
}

func (*addCmd) Pre(counter, int) bool { return true }

func (a *addCmd) ApplySUT(c counter) counter {
	if a.Amount > 5 {
		c.N += a.Amount - 1
	} else {
		c.N += a.Amount
	}

	return c
}

func (a *addCmd) ApplyModel(m int) int { return m + a.Amount }

func (*addCmd) Post(_, c counter, _, m int) bool { return c.N == m }

func (a *addCmd) Size() uint64 { return addPayload.Size(a.Amount) }

func (a *addCmd) Shrink() []counterCmd {
	var out []counterCmd
	for _, v := range addPayload.Shrink(a.Amount) {
		out = append(out, &addCmd{Amount: v})
	}

	return out
}

func (a *addCmd) String() string { return fmt.Sprintf("Add(%d)", a.Amount) }

// probeCmd counts how often each hook ran.
type probeCmd struct {
	pre   bool
	post  bool
	calls map[string]int
	name  string
}

func newProbe(name string, pre, post bool) *probeCmd {
	return &probeCmd{name: name, pre: pre, post: post, calls: map[string]int{}}
}

func (p *probeCmd) Pre(counter, int) bool {
	p.calls["pre"]++

	return p.pre
}

func (p *probeCmd) ApplySUT(c counter) counter {
	p.calls["sut"]++

	return c
}

func (p *probeCmd) ApplyModel(m int) int {
	p.calls["model"]++

	return m
}

func (p *probeCmd) Post(counter, counter, int, int) bool {
	p.calls["post"]++

	return p.post
}

func (p *probeCmd) String() string { return p.name }

func counterSystem() statecheck.System[counter, int] {
	return statecheck.System[counter, int]{
		NewSUT:   func() counter { return counter{} },
		NewModel: func() int { return 0 },
	}
}

func counterGenerator(tb testing.TB, incW, decW, addW int) *statecheck.Generator[counter, int] {
	tb.Helper()

	gen, err := statecheck.NewGenerator(
		statecheck.Variant[counter, int]{Name: "inc", Weight: incW, New: func(*statecheck.Rand) counterCmd { return incCmd{} }},
		statecheck.Variant[counter, int]{Name: "dec", Weight: decW, New: func(*statecheck.Rand) counterCmd { return decCmd{} }},
		statecheck.Variant[counter, int]{Name: "add", Weight: addW, New: func(r *statecheck.Rand) counterCmd {
			return &addCmd{Amount: addPayload.Generate(r)}
		}},
	)
	if err != nil {
		tb.Fatalf("NewGenerator: %v", err)
	}

	return gen
}

func seq(cmds ...counterCmd) []counterCmd {
	return cmds
}
