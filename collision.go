package quill

import (
	"sync"

	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/constraint"
	"github.com/akmonengine/quill/epa"
	"github.com/akmonengine/quill/gjk"
)

// Pair is a candidate couple of bodies whose AABBs overlap
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// CollisionPair carries a confirmed overlap with the terminal simplex that
// proved it, ready for penetration recovery
type CollisionPair struct {
	BodyA   *actor.RigidBody
	BodyB   *actor.RigidBody
	simplex gjk.Simplex
}

// BroadPhase emits candidate pairs whose world AABBs overlap.
// This is an O(n²) brute-force sweep suitable for moderate body counts;
// pairs of two static bodies are skipped since neither can respond.
func BroadPhase(bodies []*actor.RigidBody, workersCount int) <-chan Pair {
	pairs := make(chan Pair, workersCount)

	go func() {
		defer close(pairs)

		for i := 0; i < len(bodies); i++ {
			for j := i + 1; j < len(bodies); j++ {
				bodyA, bodyB := bodies[i], bodies[j]

				if bodyA.BodyType == actor.BodyTypeStatic && bodyB.BodyType == actor.BodyTypeStatic {
					continue
				}

				if !bodyA.Shape.GetAABB().Overlaps(bodyB.Shape.GetAABB()) {
					continue
				}

				pairs <- Pair{BodyA: bodyA, BodyB: bodyB}
			}
		}
	}()

	return pairs
}

// NarrowPhase confirms candidate pairs with GJK and recovers contact
// manifolds with EPA, fanning both stages over workersCount goroutines.
func NarrowPhase(pairs <-chan Pair, workersCount int) []*constraint.ContactManifold {
	collisionPairs := GJK(pairs, workersCount)
	manifoldsChan := EPA(collisionPairs, workersCount)

	manifolds := make([]*constraint.ContactManifold, 0)
	for m := range manifoldsChan {
		manifolds = append(manifolds, m)
	}

	return manifolds
}

func GJK(pairChan <-chan Pair, workersCount int) <-chan CollisionPair {
	collisionChan := make(chan CollisionPair, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(collisionChan)

		for i := 0; i < workersCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				for p := range pairChan {
					if result := gjk.Detect(p.BodyA, p.BodyB); result.Collide {
						collisionChan <- CollisionPair{
							BodyA:   p.BodyA,
							BodyB:   p.BodyB,
							simplex: result.Simplex,
						}
					}
				}
			}()
		}
		wg.Wait()
	}()

	return collisionChan
}

func EPA(p <-chan CollisionPair, workersCount int) <-chan *constraint.ContactManifold {
	ch := make(chan *constraint.ContactManifold, workersCount)

	go func() {
		var wg sync.WaitGroup
		defer close(ch)

		for i := 0; i < workersCount; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for pair := range p {
					manifold, err := epa.EPA(pair.BodyA, pair.BodyB, &pair.simplex)
					if err != nil {
						// Degenerate simplex (grazing contact); no response
						// this step, the pair is retried next step
						continue
					}
					ch <- manifold
				}
			}()
		}

		wg.Wait()
	}()

	return ch
}
