package emitter_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestEmit_DisassemblySnapshots pins the disassembled form of a handful of
// seed programs against committed snapshots in .snapshots/, the same way
// the teacher's fixture suite (internal/interp/fixture_test.go) pins
// interpreter output with snaps.MatchSnapshot. Here the snapshotted value
// is the C7 disassembly text rather than an execution trace: the emitted
// module is the stable artifact worth pinning, since SPEC_FULL.md leaves
// bytecode layout free to evolve but requires the disassembler's rendering
// of any given program to stay stable across refactors.
func TestEmit_DisassemblySnapshots(t *testing.T) {
	scenarios := []struct {
		name string
		src  string
	}{
		{
			name: "empty_main",
			src:  `class M is method main() is end end`,
		},
		{
			name: "field_and_constructor",
			src: `class Point is
				var x: Integer
				var y: Integer
				this(ax: Integer, ay: Integer) is
					x := ax
					y := ay
				end
				method sum(): Integer => x.Plus(y)
			end
			class M is
				method main() is
					var p: Point := Point(Integer(1), Integer(2))
					print(p.sum())
				end
			end`,
		},
		{
			name: "inheritance_override",
			src: `class Animal is
				method speak(): String => "..."
			end
			class Dog extends Animal is
				method speak(): String => "woof"
			end
			class M is
				method main() is
					var a: Animal := Dog()
					print(a.speak())
				end
			end`,
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			_, dis := mustEmit(t, sc.src, "M")
			snaps.MatchSnapshot(t, dis)
		})
	}
}
