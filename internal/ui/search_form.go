package ui

import (
	"fmt"
	"strings"
	"time"

	"lunchmate/internal/model"
	"lunchmate/internal/search"
	"lunchmate/internal/util"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Form field order.
const (
	fieldCuisine = iota
	fieldKeyword
	fieldBudget
	fieldRadius
	fieldDate
	fieldTime
	fieldParty
	fieldCount
)

// LunchPlan holds the non-query parts of the form: when the lunch happens
// and for how many people. Carried through to notification, reservation
// and history.
type LunchPlan struct {
	Date      string // YYYY-MM-DD
	Time      string
	PartySize int
}

// SearchFormModel is the lunch search form.
type SearchFormModel struct {
	focusedField int
	cuisineIdx   int
	budgetIdx    int
	radiusIdx    int
	timeIdx      int
	partySize    int
	keywordInput textinput.Model
	dateInput    textinput.Model
	error        string
}

// NewSearchFormModel creates the form with the team defaults: next Monday,
// noon, default radius and party size.
func NewSearchFormModel() *SearchFormModel {
	keyword := textinput.New()
	keyword.Placeholder = "직접 입력 (선택)"
	keyword.CharLimit = 40

	date := textinput.New()
	date.CharLimit = 10
	date.SetValue(util.NextMonday(time.Now()).Format("2006-01-02"))

	radiusIdx := 0
	for i, r := range search.RadiusOptions {
		if r == search.DefaultRadius {
			radiusIdx = i
		}
	}

	timeIdx := 0
	for i, slot := range search.TimeSlots {
		if slot == "12:00" {
			timeIdx = i
		}
	}

	return &SearchFormModel{
		radiusIdx:    radiusIdx,
		timeIdx:      timeIdx,
		partySize:    search.DefaultPartySize,
		keywordInput: keyword,
		dateInput:    date,
	}
}

// Request builds the search parameters from the current form state.
func (m *SearchFormModel) Request() (model.SearchRequest, LunchPlan, error) {
	dateStr, err := util.ParseDateInput(m.dateInput.Value())
	if err != nil {
		return model.SearchRequest{}, LunchPlan{}, fmt.Errorf("날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)")
	}
	if dateStr == "" {
		dateStr = util.NextMonday(time.Now()).Format("2006-01-02")
	}

	cuisine := strings.TrimSpace(m.keywordInput.Value())
	if cuisine == "" {
		cuisine = search.CuisinePresets[m.cuisineIdx].Keywords
	}

	req := model.SearchRequest{
		Cuisine: cuisine,
		Budget:  search.BudgetOptions[m.budgetIdx].Keyword,
		RadiusM: search.RadiusOptions[m.radiusIdx],
		Display: search.DefaultDisplay,
	}
	plan := LunchPlan{
		Date:      dateStr,
		Time:      search.TimeSlots[m.timeIdx],
		PartySize: m.partySize,
	}
	return req, plan, nil
}

// Update handles input. Enter submits via the returned submit flag; the
// root model owns the actual search command.
func (m *SearchFormModel) Update(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		return nil, true
	case "tab", "down":
		m.nextField()
		return nil, false
	case "shift+tab", "up":
		m.prevField()
		return nil, false
	}

	switch m.focusedField {
	case fieldKeyword:
		var cmd tea.Cmd
		m.keywordInput, cmd = m.keywordInput.Update(msg)
		return cmd, false
	case fieldDate:
		var cmd tea.Cmd
		m.dateInput, cmd = m.dateInput.Update(msg)
		return cmd, false
	}

	switch msg.String() {
	case "left", "h":
		m.cycle(-1)
	case "right", "l", " ":
		m.cycle(1)
	}
	return nil, false
}

func (m *SearchFormModel) cycle(dir int) {
	switch m.focusedField {
	case fieldCuisine:
		m.cuisineIdx = wrap(m.cuisineIdx+dir, len(search.CuisinePresets))
	case fieldBudget:
		m.budgetIdx = wrap(m.budgetIdx+dir, len(search.BudgetOptions))
	case fieldRadius:
		m.radiusIdx = wrap(m.radiusIdx+dir, len(search.RadiusOptions))
	case fieldTime:
		m.timeIdx = wrap(m.timeIdx+dir, len(search.TimeSlots))
	case fieldParty:
		m.partySize += dir
		if m.partySize < search.MinPartySize {
			m.partySize = search.MinPartySize
		}
		if m.partySize > search.MaxPartySize {
			m.partySize = search.MaxPartySize
		}
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}

func (m *SearchFormModel) nextField() {
	m.blurInputs()
	m.focusedField = (m.focusedField + 1) % fieldCount
	m.focusInputs()
}

func (m *SearchFormModel) prevField() {
	m.blurInputs()
	m.focusedField--
	if m.focusedField < 0 {
		m.focusedField = fieldCount - 1
	}
	m.focusInputs()
}

func (m *SearchFormModel) blurInputs() {
	m.keywordInput.Blur()
	m.dateInput.Blur()
}

func (m *SearchFormModel) focusInputs() {
	switch m.focusedField {
	case fieldKeyword:
		m.keywordInput.Focus()
	case fieldDate:
		m.dateInput.Focus()
	}
}

// View renders the form.
func (m *SearchFormModel) View(width, height int) string {
	var fields []string

	fields = append(fields, renderOptionField("종류", search.CuisinePresets[m.cuisineIdx].Label, m.focusedField == fieldCuisine))
	fields = append(fields, renderInputField("검색어", m.keywordInput, m.focusedField == fieldKeyword))
	fields = append(fields, renderOptionField("예산(1인)", search.BudgetOptions[m.budgetIdx].Label, m.focusedField == fieldBudget))
	fields = append(fields, renderOptionField("반경", fmt.Sprintf("%dm", search.RadiusOptions[m.radiusIdx]), m.focusedField == fieldRadius))
	fields = append(fields, renderInputField("날짜", m.dateInput, m.focusedField == fieldDate))
	fields = append(fields, renderOptionField("시간", search.TimeSlots[m.timeIdx], m.focusedField == fieldTime))
	fields = append(fields, renderOptionField("인원", fmt.Sprintf("%d명", m.partySize), m.focusedField == fieldParty))

	if m.error != "" {
		fields = append(fields, "")
		fields = append(fields, ErrorStyle.Render(m.error))
	}

	formContent := strings.Join(fields, "\n\n")
	return PanelStyle.
		Width(width - 4).
		Height(height - 4).
		Render(formContent)
}

func renderOptionField(label, value string, focused bool) string {
	marker := "  "
	valueStyle := NormalRowStyle
	if focused {
		marker = HelpKeyStyle.Render("❯ ")
		valueStyle = SelectedRowStyle
	}
	return fmt.Sprintf("%s%s  %s %s",
		marker,
		LabelStyle.Render(label),
		valueStyle.Render(" "+value+" "),
		MutedStyle.Render("←/→"))
}

func renderInputField(label string, input textinput.Model, focused bool) string {
	marker := "  "
	if focused {
		marker = HelpKeyStyle.Render("❯ ")
	}
	return fmt.Sprintf("%s%s  %s", marker, LabelStyle.Render(label), input.View())
}
