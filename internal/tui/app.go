// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danford/PrintChecks/models"
)

// RootModel is the TUI router:
//  1. reports every input to the session guard
//  2. shows the inactivity warning over the active page
//  3. quits on Ctrl+C or when the vault gets locked
//  4. handles NavigateTo messages
//  5. delegates all other messages to the active page
type RootModel struct {
	pages   map[string]tea.Model
	current tea.Model
	guard   ActivityGuard
	now     func() time.Time

	warning       *warningModel
	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	quitByUser bool
	locked     bool
}

func newRootModel(ctx context.Context, s Session, buildInfo models.AppBuildInfo) RootModel {
	pages := map[string]tea.Model{
		pageUnlock: NewUnlockModel(ctx, s.Vault),
		pageBrowse: NewBrowseModel(ctx, s.Vault),
	}

	start := pageBrowse
	if s.Locked {
		start = pageUnlock
	}
	return NewRootModel(pages, start, s.Guard, buildInfo)
}

// NewRootModel registers all pages and opens startPage.
func NewRootModel(pages map[string]tea.Model, startPage string, guard ActivityGuard, buildInfo models.AppBuildInfo) RootModel {
	return RootModel{
		pages:     pages,
		current:   pages[startPage],
		guard:     guard,
		now:       time.Now,
		buildInfo: buildInfo,
	}
}

func (r RootModel) Init() tea.Cmd {
	if r.current == nil {
		return nil
	}
	return r.current.Init()
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if source, ok := activitySource(msg); ok {
		r.guard.RecordActivity(source)
	}

	switch msg := msg.(type) {
	case tea.FocusMsg:
		r.guard.VisibilityChanged(true)
		return r, nil
	case tea.BlurMsg:
		r.guard.VisibilityChanged(false)
		return r, nil
	case lockedMsg:
		r.locked = true
		r.warning = nil
		return r, tea.Quit
	case warningMsg:
		w := newWarningModel(msg.deadline, r.now())
		r.warning = &w
		return r, tick()
	case tickMsg:
		if r.warning == nil {
			return r, nil
		}
		r.warning.update(time.Time(msg))
		return r, tick()
	case NavigateTo:
		next, exists := r.pages[msg.Page]
		if !exists {
			return r, nil
		}
		r.showBuildInfo = false
		r.current = next
		return r, r.current.Init()
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			r.quitByUser = true
			return r, tea.Quit
		}
		if r.warning != nil {
			// The overlay is modal: only the keep-alive answer gets through.
			if key.Matches(msg, keys.keepAlive) {
				r.guard.KeepAlive()
				r.warning = nil
			}
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}
		if key.Matches(msg, keys.version) && r.isBrowsePage() {
			r.showBuildInfo = true
			return r, nil
		}
	}

	if r.current == nil {
		return r, nil
	}

	updated, cmd := r.current.Update(msg)
	r.current = updated
	return r, cmd
}

func (r RootModel) View() string {
	var page string
	switch {
	case r.showBuildInfo:
		page = renderBuildInfoWindow(r.buildInfo)
	case r.current == nil:
		page = renderPage("PrintChecks", "", "")
	default:
		page = r.current.View()
	}

	if r.warning != nil {
		return page + "\n\n" + r.warning.View()
	}
	return page
}

func (r RootModel) isBrowsePage() bool {
	_, ok := r.current.(*BrowseModel)
	return ok
}
