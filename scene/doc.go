// Package scene is a small headless scene graph.
//
// A Scene owns a root Node and a camera Node. Nodes form a single-parent tree
// whose local transforms compose downward. A Node is active while it is
// attached under the scene root and it and all its ancestors are enabled;
// activation changes invoke the node's Behavior synchronously, parent before
// children. Scene.Update advances the scene clock and calls Behavior.Update on
// every active node in depth-first order on the caller's goroutine. Taps are
// delivered to the hit node and bubble to ancestors until one consumes them.
//
// The package is not safe for concurrent use; all calls belong to the frame
// goroutine.
package scene
