// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Danford/PrintChecks/internal/mock"
	"github.com/Danford/PrintChecks/internal/session"
	"github.com/Danford/PrintChecks/models"
)

var testBuildInfo = models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123")

func newStubRoot(guard ActivityGuard) (RootModel, *stubPage) {
	page := &stubPage{}
	root := NewRootModel(map[string]tea.Model{pageBrowse: page}, pageBrowse, guard, testBuildInfo)
	return root, page
}

func update(t *testing.T, m tea.Model, msg tea.Msg) (RootModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	root, ok := next.(RootModel)
	require.True(t, ok)
	return root, cmd
}

func TestNewRootModel_StartPage(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	guard := mock.NewMockActivityGuard(ctrl)

	locked := newRootModel(context.Background(), Session{Vault: vault, Guard: guard, Locked: true}, testBuildInfo)
	_, ok := locked.current.(*UnlockModel)
	assert.True(t, ok)

	open := newRootModel(context.Background(), Session{Vault: vault, Guard: guard}, testBuildInfo)
	_, ok = open.current.(*BrowseModel)
	assert.True(t, ok)
}

func TestRootModel_ReportsActivity(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mock.NewMockActivityGuard(ctrl)
	root, page := newStubRoot(guard)

	gomock.InOrder(
		guard.EXPECT().RecordActivity(session.KeyDown),
		guard.EXPECT().RecordActivity(session.PointerDown),
		guard.EXPECT().RecordActivity(session.Scroll),
	)

	root, _ = update(t, root, keyRunes("x"))
	root, _ = update(t, root, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	root, _ = update(t, root, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	_, _ = update(t, root, tea.MouseMsg{Action: tea.MouseActionMotion})

	assert.Len(t, page.msgs, 4)
}

func TestRootModel_Visibility(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mock.NewMockActivityGuard(ctrl)
	root, page := newStubRoot(guard)

	gomock.InOrder(
		guard.EXPECT().VisibilityChanged(false),
		guard.EXPECT().VisibilityChanged(true),
	)

	root, _ = update(t, root, tea.BlurMsg{})
	_, _ = update(t, root, tea.FocusMsg{})

	assert.Empty(t, page.msgs)
}

func TestRootModel_WarningOverlay(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mock.NewMockActivityGuard(ctrl)
	guard.EXPECT().RecordActivity(session.KeyDown).AnyTimes()
	root, page := newStubRoot(guard)

	now := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	root.now = func() time.Time { return now }

	// Arrange: the guard announces a warning 60s ahead
	root, cmd := update(t, root, warningMsg{deadline: now.Add(60 * time.Second)})
	require.NotNil(t, cmd)
	require.NotNil(t, root.warning)
	assert.Contains(t, root.View(), "Locking in 1:00")

	// Act: a second passes
	root, cmd = update(t, root, tickMsg(now.Add(time.Second)))
	assert.NotNil(t, cmd)
	assert.Contains(t, root.View(), "Locking in 0:59")

	// Keys other than the keep-alive answer are swallowed by the overlay
	root, _ = update(t, root, keyRunes("q"))
	assert.NotNil(t, root.warning)
	assert.Empty(t, page.msgs)

	// Act: keep the session active
	guard.EXPECT().KeepAlive()
	root, _ = update(t, root, keyEnter)

	// Assert
	assert.Nil(t, root.warning)
	assert.NotContains(t, root.View(), "Locking in")
	assert.Empty(t, page.msgs)
}

func TestRootModel_TickWithoutWarningStops(t *testing.T) {
	root, _ := newStubRoot(mock.NewMockActivityGuard(gomock.NewController(t)))

	_, cmd := update(t, root, tickMsg(time.Now()))

	assert.Nil(t, cmd)
}

func TestRootModel_LockedQuits(t *testing.T) {
	root, _ := newStubRoot(mock.NewMockActivityGuard(gomock.NewController(t)))
	w := newWarningModel(time.Now().Add(time.Second), time.Now())
	root.warning = &w

	root, cmd := update(t, root, lockedMsg{})

	assert.True(t, root.locked)
	assert.Nil(t, root.warning)
	assert.True(t, isQuit(cmd))
}

func TestRootModel_CtrlCQuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	guard := mock.NewMockActivityGuard(ctrl)
	guard.EXPECT().RecordActivity(session.KeyDown)
	root, page := newStubRoot(guard)

	root, cmd := update(t, root, keyCtrlC)

	assert.True(t, root.quitByUser)
	assert.False(t, root.locked)
	assert.True(t, isQuit(cmd))
	assert.Empty(t, page.msgs)
}

func TestRootModel_NavigateTo(t *testing.T) {
	unlock := &stubPage{}
	browse := &stubPage{}
	root := NewRootModel(map[string]tea.Model{pageUnlock: unlock, pageBrowse: browse}, pageUnlock,
		mock.NewMockActivityGuard(gomock.NewController(t)), testBuildInfo)

	root, _ = update(t, root, NavigateTo{Page: "missing"})
	assert.Same(t, unlock, root.current)

	root, _ = update(t, root, NavigateTo{Page: pageBrowse})
	assert.Same(t, browse, root.current)
	assert.Equal(t, 1, browse.initCalls)
}

func TestRootModel_BuildInfo(t *testing.T) {
	ctrl := gomock.NewController(t)
	vault := mock.NewMockVault(ctrl)
	vault.EXPECT().IsEncryptionEnabled().Return(false).AnyTimes()
	guard := mock.NewMockActivityGuard(ctrl)
	guard.EXPECT().RecordActivity(session.KeyDown).AnyTimes()

	browse := NewBrowseModel(context.Background(), vault)
	root := NewRootModel(map[string]tea.Model{pageBrowse: browse}, pageBrowse, guard, testBuildInfo)

	root, _ = update(t, root, keyRunes("v"))
	assert.Contains(t, root.View(), "1.2.3")
	assert.Contains(t, root.View(), "abc123")

	root, _ = update(t, root, keyEsc)
	assert.NotContains(t, root.View(), "abc123")
}
