// SPDX-License-Identifier: MIT

package circuit

import "errors"

// Sentinel errors for circuit operations.
var (
	// ErrElementNotFound indicates an operation referenced a missing element.
	ErrElementNotFound = errors.New("circuit: element not found")

	// ErrBlockNotFound indicates the ID is missing or does not name a block.
	ErrBlockNotFound = errors.New("circuit: block not found")

	// ErrWrongOwner indicates an edge between elements of different blocks.
	ErrWrongOwner = errors.New("circuit: elements belong to different blocks")

	// ErrInputOccupied indicates a second input for a tf or block.
	ErrInputOccupied = errors.New("circuit: input already connected")

	// ErrEdgeExists indicates a duplicate connection.
	ErrEdgeExists = errors.New("circuit: connection already exists")

	// ErrEdgeNotFound indicates a missing connection.
	ErrEdgeNotFound = errors.New("circuit: connection not found")

	// ErrSelfLoop indicates a connection from an element to itself.
	ErrSelfLoop = errors.New("circuit: self-loop not allowed")

	// ErrRootBlock indicates an operation the root block does not support.
	ErrRootBlock = errors.New("circuit: operation not allowed on the root block")

	// ErrNotTransfer indicates the element carries no transfer function
	// (an adder, or a block that is not simplified).
	ErrNotTransfer = errors.New("circuit: element is not a transfer element")

	// ErrNotSimplified indicates a block value was requested before the
	// block reduced to a single element.
	ErrNotSimplified = errors.New("circuit: block is not simplified")

	// ErrBusy indicates the block, or a block nested in or around it, is
	// already being rewritten.
	ErrBusy = errors.New("circuit: block is busy")

	// ErrKind indicates an accessor that does not apply to the element kind.
	ErrKind = errors.New("circuit: operation not supported for element kind")
)
