package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/faizmokh/gymattend/internal/attendance"
)

// Collection is the remote attendance store behind the screen.
type Collection interface {
	List(ctx context.Context) ([]attendance.Record, error)
	Create(ctx context.Context, draft attendance.Draft) (attendance.Record, error)
	Delete(ctx context.Context, id string) error
}

// Model owns Bubble Tea state for the attendance screen.
type Model struct {
	ctx    context.Context
	cancel context.CancelFunc
	store  Collection
	logger *zap.Logger

	state attendance.State
	focus focus

	search     textinput.Model
	dateFilter textinput.Model
	form       [3]textinput.Model
	formField  attendance.DraftField
	records    table.Model

	statusLine string
}

type focus uint8

const (
	focusTable focus = iota
	focusSearch
	focusDateFilter
	focusForm
)

type recordsLoadedMsg struct {
	records []attendance.Record
	err     error
}

type recordCreatedMsg struct {
	record attendance.Record
	err    error
}

type recordDeletedMsg struct {
	id  string
	err error
}

// NewModel seeds the screen with its collaborators. Requests issued by the
// model are bound to a child of ctx that is cancelled when the user quits.
func NewModel(ctx context.Context, store Collection, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(ctx)

	records := table.New(
		table.WithColumns(recordColumns()),
		table.WithFocused(true),
		table.WithHeight(tableHeight),
		table.WithWidth(tableWidth),
	)
	records.SetStyles(tableStyles())

	return Model{
		ctx:        ctx,
		cancel:     cancel,
		store:      store,
		logger:     logger,
		state:      attendance.NewState(),
		focus:      focusTable,
		search:     newInput("Name: ", "Search by name", 0),
		dateFilter: newInput("Date: ", "YYYY-MM-DD", 10),
		form: [3]textinput.Model{
			attendance.FieldName:   newInput("Name:    ", "Enter Name", 0),
			attendance.FieldDate:   newInput("Date:    ", "YYYY-MM-DD", 10),
			attendance.FieldTimeIn: newInput("Time in: ", "HH:MM", 5),
		},
		formField: attendance.FieldName,
		records:   records,
	}
}

func newInput(prompt, placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.Placeholder = placeholder
	input.CharLimit = limit
	return input
}

// State returns a snapshot of the screen state.
func (m Model) State() attendance.State {
	return m.state
}

// Close aborts any request still in flight.
func (m Model) Close() {
	m.cancel()
}

// Init issues the one read that populates the screen.
func (m Model) Init() tea.Cmd {
	return m.loadRecordsCmd()
}

// Update wires state transitions from user input and request completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case recordsLoadedMsg:
		return m.handleRecordsLoaded(msg)
	case recordCreatedMsg:
		return m.handleRecordCreated(msg)
	case recordDeletedMsg:
		return m.handleRecordDeleted(msg)
	default:
		return m.forwardToFocused(msg)
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.quit()
	}

	switch m.focus {
	case focusForm:
		return m.handleFormKey(msg)
	case focusSearch, focusDateFilter:
		return m.handleFilterKey(msg)
	}

	switch msg.String() {
	case "q":
		return m.quit()
	case "/":
		m.focus = focusSearch
		cmd := m.search.Focus()
		return m, cmd
	case "f":
		m.focus = focusDateFilter
		cmd := m.dateFilter.Focus()
		return m, cmd
	case "a":
		return m.openForm()
	case "d", "delete":
		return m.deleteSelected()
	}

	var cmd tea.Cmd
	m.records, cmd = m.records.Update(msg)
	return m, cmd
}

func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter, tea.KeyTab:
		m.search.Blur()
		m.dateFilter.Blur()
		m.focus = focusTable
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusSearch {
		m.search, cmd = m.search.Update(msg)
		m.state.SetSearchName(m.search.Value())
	} else {
		m.dateFilter, cmd = m.dateFilter.Update(msg)
		m.state.SetFilterDate(m.dateFilter.Value())
	}
	m.refreshTable()
	return m, cmd
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancelForm()
	case tea.KeyEnter:
		return m.submitForm()
	case tea.KeyTab, tea.KeyDown:
		return m.moveFormField(1)
	case tea.KeyShiftTab, tea.KeyUp:
		return m.moveFormField(-1)
	}

	field := m.formField
	var cmd tea.Cmd
	m.form[field], cmd = m.form[field].Update(msg)
	m.state.SetDraftField(field, m.form[field].Value())
	return m, cmd
}

func (m Model) forwardToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusSearch:
		m.search, cmd = m.search.Update(msg)
	case focusDateFilter:
		m.dateFilter, cmd = m.dateFilter.Update(msg)
	case focusForm:
		m.form[m.formField], cmd = m.form[m.formField].Update(msg)
	default:
		m.records, cmd = m.records.Update(msg)
	}
	return m, cmd
}

func (m Model) openForm() (tea.Model, tea.Cmd) {
	m.state.OpenForm()
	m.focus = focusForm
	m.formField = attendance.FieldName
	m.statusLine = ""
	cmd := m.form[m.formField].Focus()
	return m, cmd
}

// cancelForm hides the form; typed values stay for the next open.
func (m Model) cancelForm() (tea.Model, tea.Cmd) {
	m.state.CancelForm()
	m.form[m.formField].Blur()
	m.focus = focusTable
	m.statusLine = "Cancelled."
	return m, nil
}

func (m Model) moveFormField(delta int) (tea.Model, tea.Cmd) {
	m.form[m.formField].Blur()
	next := (int(m.formField) + delta + len(m.form)) % len(m.form)
	m.formField = attendance.DraftField(next)
	cmd := m.form[m.formField].Focus()
	return m, cmd
}

func (m Model) submitForm() (tea.Model, tea.Cmd) {
	if !m.state.CanSubmit() {
		return m, nil
	}
	return m, m.createRecordCmd(m.state.Draft)
}

func (m Model) deleteSelected() (tea.Model, tea.Cmd) {
	visible := m.state.Visible()
	index := m.records.Cursor()
	if index < 0 || index >= len(visible) {
		return m, nil
	}
	record := visible[index]
	if record.ID == "" {
		m.logger.Warn("cannot delete attendance without id",
			zap.String("name", record.Name),
			zap.String("date", record.Date),
		)
		return m, nil
	}
	return m, m.deleteRecordCmd(record.ID)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.cancel()
	return m, tea.Quit
}

func (m Model) handleRecordsLoaded(msg recordsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.reportFailure("error fetching attendance", msg.err)
		return m, nil
	}

	m.state.ReplaceRecords(msg.records)
	m.refreshTable()
	m.statusLine = fmt.Sprintf("Loaded %d record%s.", len(msg.records), plural(len(msg.records)))
	return m, nil
}

func (m Model) handleRecordCreated(msg recordCreatedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.reportFailure("error adding attendance", msg.err)
		return m, nil
	}

	m.state.ApplyCreated(msg.record)
	for i := range m.form {
		m.form[i].SetValue("")
		m.form[i].Blur()
	}
	m.formField = attendance.FieldName
	if m.focus == focusForm {
		m.focus = focusTable
	}
	m.refreshTable()
	m.statusLine = fmt.Sprintf("Added attendance for %s.", msg.record.Name)
	return m, nil
}

func (m Model) handleRecordDeleted(msg recordDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.reportFailure("error deleting attendance", msg.err)
		return m, nil
	}

	m.state.ApplyDeleted(msg.id)
	m.refreshTable()
	m.statusLine = "Deleted attendance record."
	return m, nil
}

// reportFailure sends a failed request to the diagnostic log only; the screen
// keeps showing the last known data.
func (m Model) reportFailure(message string, err error) {
	m.logger.Error(message,
		zap.Error(err),
		zap.String("request_id", attendance.RequestID(err)),
		zap.Int("status", attendance.StatusCode(err)),
	)
}

func (m *Model) refreshTable() {
	visible := m.state.Visible()
	rows := make([]table.Row, 0, len(visible))
	for _, record := range visible {
		rows = append(rows, table.Row{record.Name, record.DateKey(), record.TimeIn})
	}
	m.records.SetRows(rows)

	switch cursor := m.records.Cursor(); {
	case len(rows) == 0:
	case cursor >= len(rows):
		m.records.SetCursor(len(rows) - 1)
	case cursor < 0:
		m.records.SetCursor(0)
	}
}

func (m Model) loadRecordsCmd() tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		records, err := store.List(ctx)
		return recordsLoadedMsg{records: records, err: err}
	}
}

func (m Model) createRecordCmd(draft attendance.Draft) tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		record, err := store.Create(ctx, draft)
		return recordCreatedMsg{record: record, err: err}
	}
}

func (m Model) deleteRecordCmd(id string) tea.Cmd {
	store := m.store
	ctx := m.ctx
	return func() tea.Msg {
		err := store.Delete(ctx, id)
		return recordDeletedMsg{id: id, err: err}
	}
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}
