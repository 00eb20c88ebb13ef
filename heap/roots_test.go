// ABOUTME: Tests for the bounded root stack
// ABOUTME: LIFO order, overflow and underflow, and in-place rewriting

package heap

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"
)

func TestRootStack(t *testing.T) {
	biff.Alternative("Root stack with capacity 2", func(a *biff.A) {
		r := NewRootStack(2)
		biff.AssertEqual(r.Len(), 0)
		biff.AssertEqual(r.Cap(), 2)

		a.Alternative("Pop on empty", func(a *biff.A) {
			biff.AssertTrue(errors.Is(r.Pop(), ErrStackUnderflow))
			_, err := r.Peek()
			biff.AssertTrue(errors.Is(err, ErrStackUnderflow))
		})

		a.Alternative("Push two", func(a *biff.A) {
			biff.AssertNil(r.Push(Handle{index: 4}))
			biff.AssertNil(r.Push(Handle{index: 9}))
			biff.AssertEqual(r.Len(), 2)
			biff.AssertEqual(r.At(0), Handle{index: 4})

			top, err := r.Peek()
			biff.AssertNil(err)
			biff.AssertEqual(top, Handle{index: 9})

			a.Alternative("Third push overflows", func(a *biff.A) {
				err := r.Push(Handle{index: 1})
				biff.AssertTrue(errors.Is(err, ErrStackOverflow))
				biff.AssertEqual(r.Len(), 2)
			})

			a.Alternative("Pop is LIFO", func(a *biff.A) {
				biff.AssertNil(r.Pop())
				top, _ := r.Peek()
				biff.AssertEqual(top, Handle{index: 4})
				biff.AssertNil(r.Pop())
				biff.AssertEqual(r.Len(), 0)
			})

			a.Alternative("Duplicates are kept", func(a *biff.A) {
				biff.AssertNil(r.Pop())
				biff.AssertNil(r.Push(Handle{index: 4}))
				biff.AssertEqual(r.Handles(), []Handle{{index: 4}, {index: 4}})
			})

			a.Alternative("Rewrite preserves order", func(a *biff.A) {
				var visited []int
				err := r.rewrite(func(h Handle) (Handle, error) {
					visited = append(visited, h.Index())
					return Handle{index: h.index + 100, epoch: 1}, nil
				})
				biff.AssertNil(err)
				biff.AssertEqual(visited, []int{4, 9})
				biff.AssertEqual(r.Handles(), []Handle{{index: 104, epoch: 1}, {index: 109, epoch: 1}})
			})

			a.Alternative("Rewrite stops at the first error", func(a *biff.A) {
				boom := errors.New("boom")
				err := r.rewrite(func(h Handle) (Handle, error) {
					return h, boom
				})
				biff.AssertTrue(errors.Is(err, boom))
			})
		})
	})
}

func TestRootStackHandlesIsACopy(t *testing.T) {
	r := NewRootStack(1)
	if err := r.Push(Handle{index: 1}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	hs := r.Handles()
	hs[0] = Handle{index: 5}
	if r.At(0).Index() != 1 {
		t.Errorf("Expected stack to be unaffected, got %s", r.At(0))
	}
}
