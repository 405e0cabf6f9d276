package main

import (
	"fmt"

	"github.com/akmonengine/quill"
	"github.com/akmonengine/quill/actor"
	"github.com/akmonengine/quill/constraint"
	"github.com/go-gl/mathgl/mgl64"
)

// SetupScene creates a ground, a bouncing box and a welded pendulum pair.
func SetupScene() (*quill.World, *actor.RigidBody, *actor.RigidBody) {
	world := quill.NewWorld(mgl64.Vec2{0, -9.81})

	// Ground: a wide static box whose top surface sits at y=0
	groundShape := actor.NewBox(40.0, 2.0)
	groundTransform := actor.Transform{Position: mgl64.Vec2{0, -1.0}}
	groundBody := actor.NewRigidBody(groundTransform, groundShape, actor.BodyTypeStatic, 0.0)
	world.AddBody(groundBody)

	// Falling box, tilted so it lands on a corner
	boxShape := actor.NewBox(1.0, 1.0)
	boxTransform := actor.Transform{
		Position: mgl64.Vec2{-2.0, 5.0},
		Rotation: 0.5,
	}
	boxBody := actor.NewRigidBody(boxTransform, boxShape, actor.BodyTypeDynamic, 1.0)
	boxBody.Material.Restitution = 0.4
	world.AddBody(boxBody)

	// Two circles welded together, dropped as one compound
	circleA := actor.NewRigidBody(
		actor.Transform{Position: mgl64.Vec2{3.0, 4.0}},
		actor.NewCircle(0.5), actor.BodyTypeDynamic, 1.0)
	circleB := actor.NewRigidBody(
		actor.Transform{Position: mgl64.Vec2{4.0, 4.0}},
		actor.NewCircle(0.5), actor.BodyTypeDynamic, 1.0)
	world.AddBody(circleA)
	world.AddBody(circleB)
	world.AddJoint(constraint.NewWeldJoint(circleA, circleB, mgl64.Vec2{3.5, 4.0}))

	return world, groundBody, boxBody
}

func main() {
	world, _, boxBody := SetupScene()

	world.Events.Subscribe(quill.COLLISION_ENTER, func(event quill.Event) {
		e := event.(quill.CollisionEnterEvent)
		fmt.Printf("collision enter: %v <-> %v\n",
			e.BodyA.Transform.Position, e.BodyB.Transform.Position)
	})

	const dt = 1.0 / 60.0
	const steps = 300

	for step := 0; step < steps; step++ {
		world.Step(dt)

		if step%30 == 0 {
			fmt.Printf("t=%.2fs box: position=%v velocity=%v rotation=%.3f\n",
				float64(step)*dt,
				boxBody.Transform.Position,
				boxBody.Velocity,
				boxBody.Transform.Rotation)
		}
	}

	fmt.Printf("final box position: %v\n", boxBody.Transform.Position)
}
