package ecs

import (
	"iter"
	"math/bits"
)

// componentColumn holds every value of one component type for an archetype,
// addressed by slot index.
type componentColumn interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	// Compact packs live slots to the front and returns old -> new indices.
	Compact() map[int]int
	Iter() iter.Seq[int]
}

const blockSize = 64

// block is a fixed run of slots with one occupancy bit per slot.
type block[T any] struct {
	items [blockSize]T
	used  uint64
}

// blockColumn allocates blocks individually, so a pointer returned by Get
// stays valid while the column grows.
type blockColumn[T any] struct {
	blocks []*block[T]
	free   []int
	next   int
	live   int
}

func (c *blockColumn[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
		if index/blockSize == len(c.blocks) {
			c.blocks = append(c.blocks, new(block[T]))
		}
	}

	b := c.blocks[index/blockSize]
	b.items[index%blockSize] = value
	b.used |= 1 << (index % blockSize)
	c.live++
	return index
}

func (c *blockColumn[T]) Get(index int) any {
	if !c.Has(index) {
		return nil
	}
	return &c.blocks[index/blockSize].items[index%blockSize]
}

// Delete zeroes the slot so the column holds no stale references, and
// recycles the index.
func (c *blockColumn[T]) Delete(index int) {
	if !c.Has(index) {
		return
	}
	b := c.blocks[index/blockSize]
	var zero T
	b.items[index%blockSize] = zero
	b.used &^= 1 << (index % blockSize)
	c.free = append(c.free, index)
	c.live--
}

func (c *blockColumn[T]) Has(index int) bool {
	if index < 0 || index/blockSize >= len(c.blocks) {
		return false
	}
	return c.blocks[index/blockSize].used&(1<<(index%blockSize)) != 0
}

func (c *blockColumn[T]) Len() int {
	return c.live
}

func (c *blockColumn[T]) Compact() map[int]int {
	moved := make(map[int]int, c.live)
	packed := make([]*block[T], 0, (c.live+blockSize-1)/blockSize)

	dst := 0
	for src := range c.Iter() {
		if dst%blockSize == 0 {
			packed = append(packed, new(block[T]))
		}
		b := packed[dst/blockSize]
		b.items[dst%blockSize] = c.blocks[src/blockSize].items[src%blockSize]
		b.used |= 1 << (dst % blockSize)
		moved[src] = dst
		dst++
	}

	c.blocks = packed
	c.free = nil
	c.next = dst
	return moved
}

// Iter yields occupied slot indices in ascending order.
func (c *blockColumn[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for bi, b := range c.blocks {
			for used := b.used; used != 0; used &= used - 1 {
				if !yield(bi*blockSize + bits.TrailingZeros64(used)) {
					return
				}
			}
		}
	}
}
