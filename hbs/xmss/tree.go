package xmss

import (
	"fmt"
	"runtime"
	"sync"

	"hypercube-Signature/hbs"
)

// MerkleTree holds every node level, leaves at level 0. All 2^(h+1)-1
// nodes stay resident; heights are small enough that auth-path lookups
// from the cached tree beat recomputation on every Sign.
type MerkleTree struct {
	height int
	nodes  [][][]byte
}

// buildTree hashes the leaf level up to the root.
func buildTree(h hbs.Hasher, pubSeed []byte, height int, leaves [][]byte) (*MerkleTree, error) {
	if len(leaves) != 1<<uint(height) {
		return nil, fmt.Errorf("%w: %d leaves for height %d", hbs.ErrParams, len(leaves), height)
	}
	t := &MerkleTree{height: height, nodes: make([][][]byte, height+1)}
	t.nodes[0] = leaves
	for l := 1; l <= height; l++ {
		below := t.nodes[l-1]
		level := make([][]byte, len(below)/2)
		for i := range level {
			level[i] = hbs.NodeHash(h, pubSeed, uint32(l), uint32(i), below[2*i], below[2*i+1])
		}
		t.nodes[l] = level
	}
	return t, nil
}

// deriveLeaves computes every one-time leaf from the secret seed,
// fanned out over the available cores. The result is identical to a
// sequential derivation.
func deriveLeaves(p *Params, skSeed, pubSeed []byte) ([][]byte, error) {
	n := int(p.MaxSignatures())
	leaves := make([][]byte, n)
	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		go func(wkr int) {
			defer wg.Done()
			for i := wkr; i < n; i += workers {
				kp, err := hbs.WotsFromSeed(p.Ots, skSeed, pubSeed, uint32(i))
				if err != nil {
					errs[wkr] = err
					return
				}
				leaves[i] = kp.Leaf()
				kp.Zeroize()
			}
		}(wkr)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return leaves, nil
}

// Root returns the tree root.
func (t *MerkleTree) Root() []byte {
	return append([]byte(nil), t.nodes[t.height][0]...)
}

// AuthPath returns the sibling of every node on the path from leaf idx
// to the root, bottom up.
func (t *MerkleTree) AuthPath(idx uint32) [][]byte {
	path := make([][]byte, t.height)
	i := idx
	for l := 0; l < t.height; l++ {
		path[l] = append([]byte(nil), t.nodes[l][i^1]...)
		i >>= 1
	}
	return path
}

// ComputeRoot folds a leaf and its auth path back into a root
// candidate. Verification compares the result against the public root.
func ComputeRoot(h hbs.Hasher, pubSeed []byte, idx uint32, leaf []byte, auth [][]byte) []byte {
	cur := leaf
	i := idx
	for l, sib := range auth {
		if i&1 == 0 {
			cur = hbs.NodeHash(h, pubSeed, uint32(l+1), i>>1, cur, sib)
		} else {
			cur = hbs.NodeHash(h, pubSeed, uint32(l+1), i>>1, sib, cur)
		}
		i >>= 1
	}
	return cur
}
