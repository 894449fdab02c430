package main

import (
	"go.uber.org/zap"

	"portfolio/internal/geom"
)

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

type MoveCardData struct {
	Index    int
	Position geom.Point
}

func (m *model) recordAction(actionType ActionType, data, inverse interface{}) {
	action := Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	}
	m.undoStack = append(m.undoStack, action)
	m.redoStack = m.redoStack[:0]
}

// cardMoved records a finished drag so it can be undone.
func (m *model) cardMoved(index int, from, to geom.Point) {
	m.recordAction(ActionMoveCard, MoveCardData{Index: index, Position: to}, MoveCardData{Index: index, Position: from})
	m.log.Debug("card move recorded", zap.Int("card", index), zap.Int("undo", len(m.undoStack)))
}

func (m *model) undo() {
	if len(m.undoStack) == 0 {
		return
	}

	lastIndex := len(m.undoStack) - 1
	action := m.undoStack[lastIndex]
	m.undoStack = m.undoStack[:lastIndex]

	switch action.Type {
	case ActionMoveCard:
		data := action.Inverse.(MoveCardData)
		m.layout.Place(data.Index, data.Position)
	}

	m.redoStack = append(m.redoStack, action)
}

func (m *model) redo() {
	if len(m.redoStack) == 0 {
		return
	}

	lastIndex := len(m.redoStack) - 1
	action := m.redoStack[lastIndex]
	m.redoStack = m.redoStack[:lastIndex]

	switch action.Type {
	case ActionMoveCard:
		data := action.Data.(MoveCardData)
		m.layout.Place(data.Index, data.Position)
	}

	m.undoStack = append(m.undoStack, action)
}
