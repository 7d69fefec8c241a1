package ui

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"lunchmate/internal/booking"
	"lunchmate/internal/db"
	"lunchmate/internal/model"
	"lunchmate/internal/naver"
	"lunchmate/internal/notify"
	"lunchmate/internal/search"
	"lunchmate/internal/util"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const searchTimeout = 60 * time.Second

// Model is the root Bubble Tea model.
type Model struct {
	db       *sql.DB
	searcher *search.Searcher
	notifier *notify.Notifier
	booker   booking.Booker
	screen   model.Screen

	width  int
	height int

	error     string
	info      string
	searching bool

	plan LunchPlan

	// Screen models
	form       *SearchFormModel
	results    *ResultsModel
	detail     *DetailModel
	favorites  *FavoritesModel
	exclusions *ExclusionsModel
	history    *HistoryModel

	keys KeyMap
}

// New creates a new root model. booker may be nil when no reservation
// driver is configured.
func New(database *sql.DB, searcher *search.Searcher, notifier *notify.Notifier, booker booking.Booker) Model {
	return Model{
		db:       database,
		searcher: searcher,
		notifier: notifier,
		booker:   booker,
		screen:   model.ScreenSearch,
		form:     NewSearchFormModel(),
		keys:     DefaultKeyMap(),
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)

	case model.ErrorMsg:
		m.searching = false
		m.error = msg.Err.Error()
		return m, nil

	case model.ConfigErrorMsg:
		m.searching = false
		m.error = "설정 오류: " + msg.Err.Error() + " (NAVER_CLIENT_ID / NAVER_CLIENT_SECRET 확인)"
		m.screen = model.ScreenSearch
		return m, nil

	case model.SearchResultsMsg:
		m.searching = false
		m.results = NewResultsModel(msg.Restaurants, msg.RadiusUsed, msg.Widened)
		m.screen = model.ScreenResults
		m.error = ""
		m.info = ""
		return m, nil

	case detailLoadedMsg:
		m.detail = NewDetailModel(msg.restaurant, msg.favorite)
		m.screen = model.ScreenDetail
		m.error = ""
		return m, nil

	case model.FavoritesLoadedMsg:
		m.favorites = NewFavoritesModel(msg.Favorites)
		m.screen = model.ScreenFavorites
		m.error = ""
		return m, nil

	case model.ExclusionsLoadedMsg:
		m.exclusions = NewExclusionsModel(msg.Exclusions)
		m.screen = model.ScreenExclusions
		m.error = ""
		return m, nil

	case model.HistoryLoadedMsg:
		m.history = NewHistoryModel(msg.Records)
		m.screen = model.ScreenHistory
		m.error = ""
		return m, nil

	case model.FavoriteSavedMsg:
		if msg.Added {
			m.info = msg.Name + " 즐겨찾기에 추가"
		} else {
			m.info = msg.Name + " 즐겨찾기에서 제거"
		}
		if m.detail != nil {
			m.detail.SetFavorite(msg.Added)
		}
		if m.screen == model.ScreenFavorites {
			return m, loadFavoritesCmd(m.db)
		}
		return m, nil

	case model.ExclusionSavedMsg:
		if msg.Added {
			m.info = msg.Name + " 제외 목록에 추가 (다음 검색부터 반영)"
		} else {
			m.info = msg.Name + " 제외 해제"
		}
		if m.screen == model.ScreenExclusions {
			return m, loadExclusionsCmd(m.db)
		}
		return m, nil

	case model.NotifiedMsg:
		if msg.OK {
			m.info = "Slack 알림 전송 완료"
		} else {
			m.error = "Slack 알림 전송 실패 (SLACK_WEBHOOK_URL 확인)"
		}
		return m, nil

	case model.ReservationDoneMsg:
		switch msg.Status {
		case string(booking.StatusSuccess):
			m.info = "예약 완료: " + msg.Message
		case string(booking.StatusFull):
			m.error = "해당 시간대는 만석입니다"
		default:
			m.error = "예약 실패: " + msg.Message
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The search form owns most keys while it is on screen.
	if m.screen == model.ScreenSearch {
		cmd, submit := m.form.Update(msg)
		if submit {
			return m.submitSearch()
		}
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "S":
		m.screen = model.ScreenSearch
		m.error = ""
		m.info = ""
		return m, textinput.Blink
	case "F":
		return m, loadFavoritesCmd(m.db)
	case "X":
		return m, loadExclusionsCmd(m.db)
	case "H":
		return m, loadHistoryCmd(m.db)
	}

	switch m.screen {
	case model.ScreenResults:
		return m.handleResultsKey(msg)
	case model.ScreenDetail:
		return m.handleDetailKey(msg)
	case model.ScreenFavorites:
		return m.handleFavoritesKey(msg)
	case model.ScreenExclusions:
		return m.handleExclusionsKey(msg)
	case model.ScreenHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) submitSearch() (tea.Model, tea.Cmd) {
	req, plan, err := m.form.Request()
	if err != nil {
		m.form.error = err.Error()
		return m, nil
	}
	m.form.error = ""
	m.plan = plan
	m.searching = true
	m.error = ""
	m.info = ""
	return m, searchCmd(m.searcher, req)
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		m.results.MoveUp()
	case "j", "down":
		m.results.MoveDown()
	case "enter", "l", "right":
		if r := m.results.Selected(); r != nil {
			return m, loadDetailCmd(m.db, *r)
		}
	case "esc", "h", "left":
		m.screen = model.ScreenSearch
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	r := m.detail.restaurant
	switch msg.String() {
	case "esc", "h", "left":
		m.screen = model.ScreenResults
		return m, nil
	case "f":
		return m, toggleFavoriteCmd(m.db, r)
	case "x":
		return m, excludeCmd(m.db, r)
	case "n":
		return m, m.notifySelectionCmd(r)
	case "r":
		return m, m.reserveCmd(r)
	}
	return m, nil
}

func (m Model) handleFavoritesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		m.favorites.MoveUp()
	case "j", "down":
		m.favorites.MoveDown()
	case "d":
		if row := m.favorites.Selected(); row != nil {
			return m, removeFavoriteCmd(m.db, row.Name, row.Address)
		}
	case "esc":
		m.screen = model.ScreenSearch
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleExclusionsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		m.exclusions.MoveUp()
	case "j", "down":
		m.exclusions.MoveDown()
	case "d":
		if row := m.exclusions.Selected(); row != nil {
			return m, removeExclusionCmd(m.db, row.Name, row.Address)
		}
	case "esc":
		m.screen = model.ScreenSearch
		return m, textinput.Blink
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "k", "up":
		m.history.MoveUp()
	case "j", "down":
		m.history.MoveDown()
	case "esc":
		m.screen = model.ScreenSearch
		return m, textinput.Blink
	}
	return m, nil
}

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	contentHeight := m.height - 4

	var content string
	var breadcrumbParts []string

	switch m.screen {
	case model.ScreenSearch:
		breadcrumbParts = []string{"검색"}
		content = m.form.View(m.width, contentHeight)
	case model.ScreenResults:
		breadcrumbParts = []string{"검색", "결과"}
		if m.results != nil {
			content = m.results.View(m.width, contentHeight)
		}
	case model.ScreenDetail:
		breadcrumbParts = []string{"검색", "결과", "상세"}
		if m.detail != nil {
			breadcrumbParts = []string{"검색", "결과", m.detail.restaurant.Name}
			content = m.detail.View(m.width, contentHeight)
		}
	case model.ScreenFavorites:
		breadcrumbParts = []string{"즐겨찾기"}
		if m.favorites != nil {
			content = m.favorites.View(m.width, contentHeight)
		}
	case model.ScreenExclusions:
		breadcrumbParts = []string{"제외 목록"}
		if m.exclusions != nil {
			content = m.exclusions.View(m.width, contentHeight)
		}
	case model.ScreenHistory:
		breadcrumbParts = []string{"기록"}
		if m.history != nil {
			content = m.history.View(m.width, contentHeight)
		}
	}

	header := renderHeader(breadcrumbParts, m.width)
	footer := m.renderFooter()

	contentStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(contentHeight)
	content = contentStyle.Render(content)

	parts := []string{header}
	if m.error != "" {
		parts = append(parts, ErrorStyle.Width(m.width).Render("오류: "+m.error))
	}
	if m.searching {
		parts = append(parts, WarningStyle.Width(m.width).Render("검색 중..."))
	} else if m.info != "" {
		parts = append(parts, SuccessStyle.Width(m.width).Render(m.info))
	}
	parts = append(parts, content, footer)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func renderHeader(breadcrumbParts []string, width int) string {
	title := HeaderStyle.Render("lunchmate")

	var breadcrumb string
	if len(breadcrumbParts) > 0 {
		separator := BreadcrumbStyle.Render(" › ")
		parts := make([]string, len(breadcrumbParts))
		for i, part := range breadcrumbParts {
			if i == len(breadcrumbParts)-1 {
				parts[i] = BreadcrumbActiveStyle.Render(part)
			} else {
				parts[i] = BreadcrumbStyle.Render(part)
			}
		}
		breadcrumb = separator + strings.Join(parts, separator)
	}

	left := "  " + title + breadcrumb

	right := BreadcrumbStyle.Render(util.FormatDateShort(time.Now())) + "  "

	leftLen := lipgloss.Width(left)
	rightLen := lipgloss.Width(right)
	padding := width - leftLen - rightLen
	if padding < 0 {
		padding = 0
	}

	return TitleStyle.Width(width).Render(left + strings.Repeat(" ", padding) + right)
}

func (m Model) renderFooter() string {
	var pairs [][2]string
	switch m.screen {
	case model.ScreenSearch:
		pairs = [][2]string{
			{"tab", "다음 항목"}, {"←/→", "변경"}, {"enter", "검색"},
			{"ctrl+c", "종료"},
		}
	case model.ScreenResults:
		pairs = [][2]string{
			{"j/k", "이동"}, {"enter", "상세"}, {"S", "새 검색"},
			{"F", "즐겨찾기"}, {"X", "제외"}, {"H", "기록"}, {"q", "종료"},
		}
	case model.ScreenDetail:
		pairs = [][2]string{
			{"f", "즐겨찾기"}, {"x", "제외"}, {"r", "예약"}, {"n", "알림"},
			{"esc", "뒤로"},
		}
	case model.ScreenFavorites, model.ScreenExclusions:
		pairs = [][2]string{
			{"j/k", "이동"}, {"d", "삭제"}, {"S", "새 검색"}, {"q", "종료"},
		}
	case model.ScreenHistory:
		pairs = [][2]string{
			{"j/k", "이동"}, {"S", "새 검색"}, {"q", "종료"},
		}
	}

	var items []string
	for _, p := range pairs {
		items = append(items, HelpKeyStyle.Render(p[0])+" "+HelpDescStyle.Render(p[1]))
	}
	return FooterStyle.Width(m.width).Render(strings.Join(items, "  "))
}

// detailLoadedMsg carries a restaurant plus its favorite state.
type detailLoadedMsg struct {
	restaurant model.Restaurant
	favorite   bool
}

func searchCmd(searcher *search.Searcher, req model.SearchRequest) tea.Cmd {
	requested := req.RadiusM
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()

		results, radiusUsed, err := searcher.SearchExpanding(ctx, req)
		if err != nil {
			if errors.Is(err, naver.ErrCredentials) {
				return model.ConfigErrorMsg{Err: err}
			}
			return model.ErrorMsg{Err: err}
		}
		return model.SearchResultsMsg{
			Restaurants: results,
			RadiusUsed:  radiusUsed,
			Widened:     radiusUsed != requested,
		}
	}
}

func loadDetailCmd(database *sql.DB, r model.Restaurant) tea.Cmd {
	return func() tea.Msg {
		fav, err := db.IsFavorite(database, r.Name, r.Address)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return detailLoadedMsg{restaurant: r, favorite: fav}
	}
}

func loadFavoritesCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		rows, err := db.ListFavorites(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.FavoritesLoadedMsg{Favorites: rows}
	}
}

func loadExclusionsCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		rows, err := db.ListExclusions(database)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExclusionsLoadedMsg{Exclusions: rows}
	}
}

func loadHistoryCmd(database *sql.DB) tea.Cmd {
	return func() tea.Msg {
		rows, err := db.ListHistory(database, 0)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.HistoryLoadedMsg{Records: rows}
	}
}

func toggleFavoriteCmd(database *sql.DB, r model.Restaurant) tea.Cmd {
	return func() tea.Msg {
		fav, err := db.IsFavorite(database, r.Name, r.Address)
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		if fav {
			if err := db.RemoveFavorite(database, r.Name, r.Address); err != nil {
				return model.ErrorMsg{Err: err}
			}
			return model.FavoriteSavedMsg{Name: r.Name, Added: false}
		}
		if _, err := db.AddFavorite(database, r.Name, r.Address, shortCategory(r.Category)); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.FavoriteSavedMsg{Name: r.Name, Added: true}
	}
}

func removeFavoriteCmd(database *sql.DB, name, address string) tea.Cmd {
	return func() tea.Msg {
		if err := db.RemoveFavorite(database, name, address); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.FavoriteSavedMsg{Name: name, Added: false}
	}
}

func excludeCmd(database *sql.DB, r model.Restaurant) tea.Cmd {
	return func() tea.Msg {
		if _, err := db.AddExclusion(database, r.Name, r.Address, ""); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExclusionSavedMsg{Name: r.Name, Added: true}
	}
}

func removeExclusionCmd(database *sql.DB, name, address string) tea.Cmd {
	return func() tea.Msg {
		if err := db.RemoveExclusion(database, name, address); err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.ExclusionSavedMsg{Name: name, Added: false}
	}
}

// notifySelectionCmd posts the pick to Slack and records it in history.
func (m Model) notifySelectionCmd(r model.Restaurant) tea.Cmd {
	database := m.db
	notifier := m.notifier
	plan := m.plan
	return func() tea.Msg {
		dateStr := plan.Date
		if t, err := time.Parse("2006-01-02", plan.Date); err == nil {
			dateStr = util.FormatDateKorean(t)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		ok := notifier.SendSelection(ctx, r.Name, r.Address, dateStr, plan.Time, plan.PartySize, r.Phone)

		err := db.AppendHistory(database, model.NewHistoryEntry{
			RestaurantName:  r.Name,
			Address:         r.Address,
			Phone:           r.Phone,
			CuisineType:     shortCategory(r.Category),
			ReservationDate: plan.Date,
			ReservationTime: plan.Time,
			PartySize:       plan.PartySize,
			Link:            r.Link,
		})
		if err != nil {
			return model.ErrorMsg{Err: err}
		}
		return model.NotifiedMsg{OK: ok}
	}
}

func (m Model) reserveCmd(r model.Restaurant) tea.Cmd {
	booker := m.booker
	notifier := m.notifier
	plan := m.plan
	return func() tea.Msg {
		if booker == nil {
			return model.ReservationDoneMsg{
				Status:  string(booking.StatusUnavailable),
				Message: "예약 드라이버가 설정되지 않았습니다",
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()

		result, err := booker.Reserve(ctx, booking.Request{
			RestaurantName: r.Name,
			PlaceURL:       r.MapURL,
			Date:           plan.Date,
			Time:           plan.Time,
			PartySize:      plan.PartySize,
		})
		if err != nil {
			return model.ReservationDoneMsg{
				Status:  string(booking.StatusFailed),
				Message: err.Error(),
			}
		}

		notifier.SendReservationResult(ctx, result)

		message := result.Message
		if message == "" {
			message = fmt.Sprintf("%s %s %d명", plan.Date, plan.Time, plan.PartySize)
		}
		return model.ReservationDoneMsg{
			Status:  string(result.Status),
			Message: message,
		}
	}
}
