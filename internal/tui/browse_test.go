// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Danford/PrintChecks/internal/mock"
	"github.com/Danford/PrintChecks/internal/service"
	"github.com/Danford/PrintChecks/internal/store"
	"github.com/Danford/PrintChecks/models"
)

// loadedBrowse returns a BrowseModel that has processed its initial load.
func loadedBrowse(t *testing.T, vault *mock.MockVault, keys []string) *BrowseModel {
	t.Helper()

	vault.EXPECT().Keys(gomock.Any()).Return(keys, nil)
	vault.EXPECT().Stats(gomock.Any()).Return(models.StorageStats{Total: 2, Encrypted: 1, PlainText: 1}, nil)

	m := NewBrowseModel(context.Background(), vault)
	cmd := m.Init()
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())
	return m
}

func TestBrowseModel_LoadHidesMetadataKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().IsEncryptionEnabled().Return(true).AnyTimes()

	m := loadedBrowse(t, vault, []string{"checks", service.KeyEncryptionEnabled, service.KeyEncryptionTest, "vendors"})

	assert.False(t, m.loading)
	assert.Equal(t, []string{"checks", "vendors"}, m.keys)
	view := m.View()
	assert.Contains(t, view, "Encryption: on")
	assert.Contains(t, view, "sensitive values: 2 (1 encrypted, 1 plain text)")
	assert.NotContains(t, view, service.KeyEncryptionTest)
}

func TestBrowseModel_LoadError(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().Keys(gomock.Any()).Return(nil, store.NewStorageError("keys", "", store.ErrUnavailable))
	vault.EXPECT().IsEncryptionEnabled().Return(false).AnyTimes()

	m := NewBrowseModel(context.Background(), vault)
	_, _ = m.Update(m.Init()())

	assert.Contains(t, m.View(), "Storage is unavailable")
}

func TestBrowseModel_OpenAndCopyValue(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().IsEncryptionEnabled().Return(true).AnyTimes()
	m := loadedBrowse(t, vault, []string{"checks", "vendors"})

	var copied string
	m.copyValue = func(s string) error {
		copied = s
		return nil
	}

	// Copy before opening anything
	_, cmd := m.Update(keyRunes("c"))
	assert.NotNil(t, cmd)
	assert.Contains(t, m.status, "Nothing to copy")

	// Arrange: select and open the second key
	vault.EXPECT().Get(gomock.Any(), "vendors").Return([]byte(`[{"id":"v1","name":"ACME"}]`), nil)
	_, _ = m.Update(keyDown)
	_, cmd = m.Update(keyEnter)
	require.NotNil(t, cmd)
	_, _ = m.Update(cmd())

	assert.Equal(t, "vendors", m.selected)
	assert.Contains(t, m.View(), `"name": "ACME"`)

	// Act
	_, cmd = m.Update(keyRunes("c"))

	// Assert
	assert.NotNil(t, cmd)
	assert.Equal(t, `[{"id":"v1","name":"ACME"}]`, copied)
	assert.Equal(t, "Copied vendors", m.status)

	_, _ = m.Update(clearStatusMsg{})
	assert.Empty(t, m.status)

	_, _ = m.Update(keyEsc)
	assert.Empty(t, m.selected)
}

func TestBrowseModel_CopyFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().IsEncryptionEnabled().Return(false).AnyTimes()
	m := loadedBrowse(t, vault, []string{"checks"})
	m.selected = "checks"
	m.value = []byte("[]")
	m.copyValue = func(string) error { return errors.New("no clipboard") }

	_, _ = m.Update(keyRunes("c"))

	assert.Contains(t, m.View(), "Copy failed: no clipboard")
}

func TestBrowseModel_ValueError(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().IsEncryptionEnabled().Return(true).AnyTimes()
	m := loadedBrowse(t, vault, []string{"checks"})

	_, _ = m.Update(valueLoadedMsg{key: "checks", err: store.NewEncryptionError("get", "checks", store.ErrMalformedEnvelope, nil)})

	assert.Empty(t, m.selected)
	assert.Contains(t, m.View(), "damaged")
}

func TestBrowseModel_Lock(t *testing.T) {
	t.Run("encryption on", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vault := mock.NewMockVault(ctrl)
		vault.EXPECT().IsEncryptionEnabled().Return(true).AnyTimes()
		m := loadedBrowse(t, vault, []string{"checks"})
		m.selected = "checks"
		m.value = []byte("[]")

		vault.EXPECT().Lock()
		_, cmd := m.Update(keyRunes("L"))

		require.NotNil(t, cmd)
		assert.Equal(t, lockedMsg{}, cmd())
		assert.Empty(t, m.selected)
		assert.Nil(t, m.value)
	})

	t.Run("encryption off", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		vault := mock.NewMockVault(ctrl)
		vault.EXPECT().IsEncryptionEnabled().Return(false).AnyTimes()
		m := loadedBrowse(t, vault, []string{"checks"})

		_, cmd := m.Update(keyRunes("L"))

		assert.NotNil(t, cmd)
		assert.Contains(t, m.status, "Encryption is off")
	})
}

func TestBrowseModel_QuitAndSelectionBounds(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	m := loadedBrowse(t, vault, []string{"a", "b"})

	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.idx)
	_, _ = m.Update(keyDown)
	_, _ = m.Update(keyDown)
	assert.Equal(t, 1, m.idx)

	// A reload with fewer keys clamps the selection
	_, _ = m.Update(keysLoadedMsg{keys: []string{"a"}})
	assert.Equal(t, 0, m.idx)

	_, cmd := m.Update(keyRunes("q"))
	assert.True(t, isQuit(cmd))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "(empty)", formatValue(nil))
	assert.Equal(t, "not json", formatValue([]byte("not json")))
	assert.Equal(t, "{\n  \"a\": 1\n}", formatValue([]byte(`{"a":1}`)))

	long := "[" + strings.Repeat("1,", 40) + "1]"
	lines := strings.Split(formatValue([]byte(long)), "\n")
	assert.Len(t, lines, maxValueLines+1)
	assert.Contains(t, lines[maxValueLines], "more lines")
}
