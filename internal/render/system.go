package render

import (
	"io"
	"strings"

	"github.com/comalice/pg2hda/internal/pgraph"
)

// System writes the description of every process of sys.
func System(w io.Writer, sys *pgraph.System) error {
	p := &printer{w: w}
	p.printf("\n")
	describeProcesses(p, sys, false)
	return p.err
}

func describeProcesses(p *printer, sys *pgraph.System, short bool) {
	for i, proc := range sys.Procs {
		if len(sys.Procs) > 1 {
			p.printf("Process %d: %s\n", i, proc.Name)
		} else {
			p.printf("Process: %s\n", proc.Name)
		}
		if !short {
			describeProcess(p, sys, proc)
		}
	}
}

func describeVariables(p *printer, sys *pgraph.System, names []string) {
	for _, n := range names {
		i, ok := sys.VarIndex(n)
		if !ok {
			continue
		}
		v := sys.Vars[i]
		if sys.Mode == pgraph.ModeLegacy {
			p.printf("%s\tdomain:\t\t", v.Name)
			for _, x := range v.Domain {
				p.printf("%d\t", x)
			}
			p.printf("\n")
			continue
		}
		p.printf("int %s = %d", v.Name, v.Initial)
		if len(v.Domain) > 0 {
			p.printf("\tdomain: %s", ints(v.Domain, " "))
		}
		p.printf("\n")
	}
}

func varNames(sys *pgraph.System) []string {
	names := make([]string, len(sys.Vars))
	for i, v := range sys.Vars {
		names[i] = v.Name
	}
	return names
}

func describeProcess(p *printer, sys *pgraph.System, proc *pgraph.Process) {
	p.printf("\n\n%s\n\n", plural(len(proc.Vars), "variable", "variables"))
	describeVariables(p, sys, proc.Vars)

	p.printf("\n\n%s\n\n", plural(len(proc.Locations), "location", "locations"))
	for i, l := range proc.Locations {
		if l.Name != "" {
			p.printf("%d:%s\t", i, l.Name)
		} else {
			p.printf("%d\t", i)
		}
	}

	p.printf("\n\n%s\n\n", plural(len(proc.Actions), "action", "actions"))
	for _, a := range proc.Actions {
		p.printf("%s\n", a.Name())
		switch a := a.(type) {
		case *pgraph.MapAction:
			p.printf("\t%s\n", strings.Join(a.Vars, "\t"))
			for j := range a.In {
				p.printf("\t%s\t->\t%s\n", ints(a.In[j], "\t"), ints(a.Out[j], "\t"))
			}
		case *pgraph.Assignments:
			p.printf("   %s\n", a.Effect())
		}
		p.printf("\n")
	}

	p.printf("\n\n%s\n\n", plural(len(proc.Transitions), "transition", "transitions"))
	for _, t := range proc.Transitions {
		p.printf("start location:\t%s\n", proc.LocationName(t.From))
		p.printf("end location:\t%s\n", proc.LocationName(t.To))
		p.printf("action:\t%s\n", pgraph.ActionName(t.Action))
		p.printf("guard condition:\t")
		describeCondition(p, t.Guard)
		p.printf("\n")
	}

	p.printf("\ninitial location:\t%s\n\ninitial condition:\t", proc.LocationName(proc.Initial))
	describeCondition(p, proc.InitialCond)
	p.printf("\n\nfinal location:")
	if proc.HasFinal() {
		p.printf("\t\t%s\n\nfinal condition:\t", proc.LocationName(proc.Final))
		describeCondition(p, proc.FinalCond)
	} else {
		p.printf("\t\tnone\n")
	}
	p.printf("\n\n\n")
}

func describeCondition(p *printer, c pgraph.Condition) {
	t, ok := c.(*pgraph.TableCondition)
	if !ok {
		if c == nil {
			p.printf("true\n")
		} else {
			p.printf("%s\n", c)
		}
		return
	}
	if len(t.Vars) == 0 {
		p.printf("true\n")
		return
	}
	p.printf("%s\n\t%s\n", t.Name, strings.Join(t.Vars, "\t"))
	for _, r := range t.Rows {
		p.printf("\t%s\n", ints(r, "\t"))
	}
}

func ints(xs []int, sep string) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = itoa(x)
	}
	return strings.Join(parts, sep)
}
