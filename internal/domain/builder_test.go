package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_DragAndDrop(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("drop without drag does nothing", func(t *testing.T) {
		s := NewSession("s1", now)

		_, changed, err := s.Drop(10, nil)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 0, s.Document.Len())
	})

	t.Run("drop on empty canvas", func(t *testing.T) {
		s := NewSession("s1", now)
		require.NoError(t, s.StartDrag(BlockKindText))

		block, changed, err := s.Drop(50, nil)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, int64(1), block.ID)
		assert.Nil(t, s.Dragged)

		// a second drop needs a new drag
		_, changed, err = s.Drop(50, nil)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, s.Document.Len())
	})

	t.Run("drop uses block midpoints", func(t *testing.T) {
		s := NewSession("s1", now)
		for _, kind := range []BlockKind{BlockKindText, BlockKindText} {
			require.NoError(t, s.StartDrag(kind))
			_, _, err := s.DropAt(s.Document.Len())
			require.NoError(t, err)
		}

		require.NoError(t, s.StartDrag(BlockKindDivider))
		block, changed, err := s.Drop(45, []BlockBounds{{Top: 0, Height: 40}, {Top: 40, Height: 40}})
		require.NoError(t, err)
		require.True(t, changed)
		assert.Equal(t, 1, s.Document.IndexOf(block.ID))
	})

	t.Run("cancel drag", func(t *testing.T) {
		s := NewSession("s1", now)
		require.NoError(t, s.StartDrag(BlockKindSpacer))
		s.CancelDrag()

		_, changed, err := s.Drop(0, nil)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("unknown kind", func(t *testing.T) {
		s := NewSession("s1", now)
		assert.Error(t, s.StartDrag("table"))
		assert.Nil(t, s.Dragged)
	})
}

func TestSession_Selection(t *testing.T) {
	s := NewSession("s1", time.Now())
	require.NoError(t, s.StartDrag(BlockKindText))
	first, _, _ := s.DropAt(0)
	require.NoError(t, s.StartDrag(BlockKindButton))
	second, _, _ := s.DropAt(1)

	assert.False(t, s.Select(42))
	assert.Nil(t, s.SelectedBlockID)

	assert.True(t, s.Select(second.ID))
	selected, ok := s.SelectedBlock()
	require.True(t, ok)
	assert.Equal(t, BlockKindButton, selected.Kind)

	t.Run("deleting another block keeps the selection", func(t *testing.T) {
		assert.True(t, s.DeleteBlock(first.ID))
		require.NotNil(t, s.SelectedBlockID)
		assert.Equal(t, second.ID, *s.SelectedBlockID)
	})

	t.Run("deleting the selected block clears it", func(t *testing.T) {
		assert.True(t, s.DeleteBlock(second.ID))
		assert.Nil(t, s.SelectedBlockID)
		_, ok := s.SelectedBlock()
		assert.False(t, ok)
	})

	t.Run("clear selection", func(t *testing.T) {
		require.NoError(t, s.StartDrag(BlockKindText))
		b, _, _ := s.DropAt(0)
		require.True(t, s.Select(b.ID))
		s.ClearSelection()
		assert.Nil(t, s.SelectedBlockID)
	})
}

func TestSession_ValidateForSave(t *testing.T) {
	withBlock := func(name, subject string) *Session {
		s := NewSession("s1", time.Now())
		s.SetMetadata(name, subject)
		require.NoError(t, s.StartDrag(BlockKindText))
		_, _, err := s.DropAt(0)
		require.NoError(t, err)
		return s
	}

	tests := []struct {
		name     string
		session  *Session
		expected string
	}{
		{"empty name", withBlock("", "Subject"), MessageTemplateNameRequired},
		{"whitespace name", withBlock("   ", "Subject"), MessageTemplateNameRequired},
		{"name checked before subject", withBlock("", ""), MessageTemplateNameRequired},
		{"empty subject", withBlock("Welcome", "\t"), MessageSubjectRequired},
		{"no blocks", func() *Session {
			s := NewSession("s1", time.Now())
			s.SetMetadata("Welcome", "Hello")
			return s
		}(), MessageBlocksRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.session.ValidateForSave()
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			var v ValidationError
			require.ErrorAs(t, err, &v)
			assert.Equal(t, tt.expected, v.Message)
		})
	}

	assert.NoError(t, withBlock("Welcome", "Hello").ValidateForSave())
}

func TestSession_Reset(t *testing.T) {
	s := NewSession("s1", time.Now())
	s.SetMetadata("Welcome", "Hello")
	require.NoError(t, s.StartDrag(BlockKindText))
	b, _, _ := s.DropAt(0)
	s.Select(b.ID)
	require.NoError(t, s.StartDrag(BlockKindSpacer))

	s.Reset()

	assert.Equal(t, "", s.Document.Name)
	assert.Equal(t, "", s.Document.Subject)
	assert.Equal(t, 0, s.Document.Len())
	assert.Nil(t, s.SelectedBlockID)
	assert.Nil(t, s.Dragged)
}

func TestSession_Message(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s := NewSession("s1", now)

	assert.True(t, s.CurrentMessage(now).IsZero())

	s.Notify(MessageTemplateSaved, MessageTypeSuccess, now, DefaultMessageTTL)

	msg := s.CurrentMessage(now.Add(4 * time.Second))
	assert.Equal(t, MessageTemplateSaved, msg.Text)
	assert.Equal(t, MessageTypeSuccess, msg.Type)

	assert.True(t, s.CurrentMessage(now.Add(DefaultMessageTTL)).IsZero())
	assert.True(t, s.Message.IsZero())
}

func TestSession_Snapshot(t *testing.T) {
	s := NewSession("s1", time.Now())
	require.NoError(t, s.StartDrag(BlockKindText))
	b, _, _ := s.DropAt(0)
	s.Select(b.ID)
	require.NoError(t, s.StartDrag(BlockKindHeading))

	snap := s.Snapshot()
	assert.Equal(t, s.Document, snap.Document)

	snap.Document.Blocks[0].Properties["content"] = "changed"
	*snap.SelectedBlockID = 99
	snap.Dragged.Defaults["content"] = "changed"

	assert.Equal(t, "Click to edit text", s.Document.Blocks[0].Properties["content"])
	assert.Equal(t, b.ID, *s.SelectedBlockID)
	assert.Equal(t, "Your Heading Here", s.Dragged.Defaults["content"])
}

func TestBuilderRequests_Validate(t *testing.T) {
	index := 2
	assert.NoError(t, (&DropRequest{SessionID: "s", Index: &index}).Validate())
	assert.Error(t, (&DropRequest{}).Validate())
	assert.Error(t, (&DropRequest{SessionID: "s", Kind: "nope"}).Validate())
	assert.Error(t, (&DropRequest{SessionID: "s", Bounds: []BlockBounds{{Top: 0, Height: -1}}}).Validate())

	assert.NoError(t, (&UpdatePropertyRequest{SessionID: "s", BlockID: 1, Name: "content"}).Validate())
	assert.Error(t, (&UpdatePropertyRequest{SessionID: "s", BlockID: 1}).Validate())

	assert.NoError(t, (&MoveBlockRequest{SessionID: "s", BlockID: 1, Direction: MoveDown}).Validate())
	assert.Error(t, (&MoveBlockRequest{SessionID: "s", BlockID: 1, Direction: "left"}).Validate())

	assert.NoError(t, (&DragRequest{SessionID: "s", Kind: BlockKindImage}).Validate())
	assert.Error(t, (&DragRequest{SessionID: "s"}).Validate())

	assert.Error(t, (&SetMetadataRequest{SessionID: "s", Name: string(make([]byte, 256))}).Validate())
	assert.NoError(t, (&SetMetadataRequest{SessionID: "s"}).Validate())

	assert.Error(t, (&SessionRequest{}).Validate())
	assert.Error(t, (&BlockRequest{}).Validate())
}
