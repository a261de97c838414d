package game

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

var (
	ErrPositionAlreadySet = errors.New("snake position has already been set")
	ErrChainTooShort      = errors.New("snake chain is too short")
)

type WrapPolicy int

const (
	// WrapFlush re-enters the head fully inside the field.
	WrapFlush WrapPolicy = iota
	// WrapEdge re-enters the head on the outer edge, partially off the field.
	WrapEdge
)

// ChainPolicy holds the behaviours that differ between snake variants.
type ChainPolicy struct {
	// MinLength is the smallest total length (head included) a snake may be
	// built with. Zero disables the guard.
	MinLength int
	// SkipTrailingSegment excludes the body segment right behind the head
	// from the look-ahead collision check.
	SkipTrailingSegment bool
	ReverseWrap         WrapPolicy
}

func DefaultChainPolicy() ChainPolicy {
	return ChainPolicy{
		MinLength:           4,
		SkipTrailingSegment: true,
		ReverseWrap:         WrapFlush,
	}
}

type Snake struct {
	head          *Segment
	body          []*Segment
	basePartCount int
	isPositionSet bool
	policy        ChainPolicy
}

// NewSnake builds a snake of baseLength segments, head included.
func NewSnake(baseLength int, policy ChainPolicy) (*Snake, error) {
	if baseLength < 1 || (policy.MinLength > 0 && baseLength < policy.MinLength) {
		return nil, fmt.Errorf("%w: got %d segments, need at least %d", ErrChainTooShort, baseLength, max(1, policy.MinLength))
	}

	body := make([]*Segment, 0, baseLength-1)
	for range baseLength - 1 {
		body = append(body, NewSegment())
	}

	return &Snake{
		head:          NewSegment(),
		body:          body,
		basePartCount: baseLength - 1,
		policy:        policy,
	}, nil
}

// SetSize sets the dimensions of every snake segment.
func (s *Snake) SetSize(width, height int) {
	s.head.SetSize(width, height)
	for _, part := range s.body {
		part.SetSize(width, height)
	}
}

func (s *Snake) HeadPosition() Point {
	return s.head.Position()
}

func (s *Snake) HeadDimensions() Size {
	return s.head.Size()
}

// SetPosition lays the snake out in a straight line starting at origin, tail
// first, with the head at the far end. It can only be called once per
// lifecycle; Reset allows another call.
func (s *Snake) SetPosition(origin Point, path Path) error {
	if s.isPositionSet {
		log.Warn("Snake initial position already set, did you mean to call Move?", "origin", origin)
		return ErrPositionAlreadySet
	}

	positionX, positionY := origin.X, origin.Y
	for idx := len(s.body) - 1; idx >= 0; idx-- {
		part := s.body[idx]
		part.SetPosition(positionX, positionY)

		switch path {
		case Horizontal:
			positionX += part.Size().Width
		case Vertical:
			positionY += part.Size().Height
		}
	}

	s.head.SetPosition(positionX, positionY)
	s.isPositionSet = true
	return nil
}

func (s *Snake) tail() *Segment {
	if len(s.body) == 0 {
		return s.head
	}
	return s.body[len(s.body)-1]
}

// AddBody grows the snake by one segment stacked on the current tail. It
// trails in as the snake moves.
func (s *Snake) AddBody() {
	tail := s.tail()
	tailPosition := tail.Position()
	tailSize := tail.Size()

	part := NewSegment()
	part.SetColor(tail.Color())
	part.SetPosition(tailPosition.X, tailPosition.Y)
	part.SetSize(tailSize.Width, tailSize.Height)

	s.body = append(s.body, part)
}

// Move advances the head step*direction along path, wrapping around the
// field, and drags every body segment into the spot the segment in front of
// it held before the move.
func (s *Snake) Move(step int, path Path, direction Direction, field *Field) {
	fieldSize := field.Size()
	headSize := s.head.Size()
	positionOfPartInFront := s.head.Position()

	newPosition := positionOfPartInFront
	switch path {
	case Horizontal:
		newPosition.X = s.wrap(newPosition.X+step*int(direction), fieldSize.Width, headSize.Width)
	case Vertical:
		newPosition.Y = s.wrap(newPosition.Y+step*int(direction), fieldSize.Height, headSize.Height)
	}
	s.head.SetPosition(newPosition.X, newPosition.Y)

	for _, part := range s.body {
		currentPartPosition := part.Position()
		part.SetPosition(positionOfPartInFront.X, positionOfPartInFront.Y)
		positionOfPartInFront = currentPartPosition
	}
}

func (s *Snake) wrap(coordinate, extent, headExtent int) int {
	if coordinate >= extent {
		return 0
	}
	if coordinate <= 0 {
		if s.policy.ReverseWrap == WrapEdge {
			return extent
		}
		return extent - headExtent
	}
	return coordinate
}

func (s *Snake) SetColor(color Color) {
	s.head.SetColor(color)
	for _, part := range s.body {
		part.SetColor(color)
	}
}

// Draw paints the head first, then the body in stored order.
func (s *Snake) Draw(surface Surface) {
	s.head.Draw(surface)
	for _, part := range s.body {
		part.Draw(surface)
	}
}

// IsSnakeHeadCollidingWithBody checks where the head is about to be: the
// head box pushed one head length further along the direction of travel.
func (s *Snake) IsSnakeHeadCollidingWithBody(direction Direction, path Path) bool {
	headSize := s.head.Size()
	projected := s.head.Position()

	switch path {
	case Horizontal:
		projected.X += int(direction) * headSize.Width
	case Vertical:
		projected.Y += int(direction) * headSize.Height
	}

	lowest := 0
	if s.policy.SkipTrailingSegment {
		lowest = 1
	}

	for idx := len(s.body) - 1; idx >= lowest; idx-- {
		part := s.body[idx]
		if BoxesCollide(headSize, projected, part.Size(), part.Position()) {
			return true
		}
	}

	return false
}

// Reset drops every grown segment and allows SetPosition again.
func (s *Snake) Reset() {
	s.body = s.body[:s.basePartCount]
	s.isPositionSet = false
}

// Length is the total number of segments, head included.
func (s *Snake) Length() int {
	return len(s.body) + 1
}

func (s *Snake) BodyPositions() []Point {
	positions := make([]Point, 0, len(s.body))
	for _, part := range s.body {
		positions = append(positions, part.Position())
	}
	return positions
}

// Occupies reports whether any segment overlaps the given box. Touching
// edges do not count.
func (s *Snake) Occupies(size Size, position Point) bool {
	if interiorsOverlap(s.head.Size(), s.head.Position(), size, position) {
		return true
	}
	for _, part := range s.body {
		if interiorsOverlap(part.Size(), part.Position(), size, position) {
			return true
		}
	}
	return false
}
