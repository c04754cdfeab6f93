package typeshape

import (
	"errors"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/stvp/assert"
)

type failWriter int

var errFull = errors.New("writer is full")

// Write accepts up to fw bytes in total
func (fw *failWriter) Write(p []byte) (int, error) {
	if len(p) <= int(*fw) {
		*fw -= failWriter(len(p))
		return len(p), nil
	}
	n := int(*fw)
	*fw = 0
	return n, errFull
}

func TestSeq_appendNil(t *testing.T) {
	var s Seq
	s.Append(nil)
	s.Append(Empty)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "", String(s))
}

func TestSeq_fork(t *testing.T) {
	var s Seq
	f := s.Fork()
	f.Append(Str("x"))
	s.Append(f)
	assert.Equal(t, "x", String(s))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "", String(Join(Str(", "))))
	assert.Equal(t, "a", String(Join(Str(", "), Str("a"))))
	assert.Equal(t, "a, 1, b",
		String(Join(Str(", "), Str("a"), Print{1}, Data("b"))))
}

func TestCatchEmit_writeError(t *testing.T) {
	fw := failWriter(4)
	n, err := CatchEmit(Seq{Str("abc"), Str("def")}, &fw)
	assert.Equal(t, errFull, errors.Unwrap(err))
	assert.Equal(t, 1, n)
}

func TestCatchEmit_ok(t *testing.T) {
	fw := failWriter(100)
	n, err := CatchEmit(Printf("%s<%d>", "List", 4), &fw)
	assert.Nil(t, err)
	assert.Equal(t, 7, n)
}

func TestCatch_passesOtherPanics(t *testing.T) {
	defer func() {
		assert.Equal(t, "boom", recover())
	}()
	Catch(func() { panic("boom") })
	t.Error("panic was swallowed")
}

func TestCatch_depthError(t *testing.T) {
	err := Catch(func() {
		panic(&DepthError{Max: 2, Trail: []string{"A", "B", "C"}})
	})
	assert.Equal(t, "typeshape: type nesting exceeds 2: A -> B -> C", err.Error())
}

func ExampleGenerator() {
	arrow := Generator(func(wr io.Writer) int {
		n, _ := io.WriteString(wr, " -> ")
		return n
	})
	Seq{Str("A"), arrow, Str("B")}.Emit(os.Stdout)
	fmt.Println()
	// Output:
	// A -> B
}
