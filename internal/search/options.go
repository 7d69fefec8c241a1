package search

// Fixed geography and query presets for the team's lunch area.

// Center point for distance calculation: Korea Press Center,
// 124 Sejong-daero, Jung-gu, Seoul.
const (
	DefaultCenterLat = 37.5700
	DefaultCenterLng = 126.9768
)

// SearchAreas are the neighborhood names queried on every search. Federating
// over several nearby area names pulls in listings the single configured
// area name would miss.
var SearchAreas = []string{"광화문", "시청", "무교동"}

// Radius options in meters.
var RadiusOptions = []int{500, 1000, 1500, 2000}

const (
	DefaultRadius = 1000
	MaxRadius     = 2000
)

// DefaultDisplay is the result count shown to the user after ranking.
const DefaultDisplay = 10

// perCallDisplay bounds each underlying API call; the federation itself
// provides the volume.
const perCallDisplay = 5

// CuisinePreset maps a display label to the keyword set queried for it.
// Multi-token keyword sets are split and queried independently.
type CuisinePreset struct {
	Label    string
	Keywords string
}

var CuisinePresets = []CuisinePreset{
	{"한식", "한식"},
	{"중식", "중식 중국집"},
	{"일식", "일식 초밥"},
	{"양식", "양식 파스타 스테이크"},
	{"분식", "분식"},
	{"동남아", "베트남 태국 동남아"},
	{"뷔페", "뷔페"},
}

// BudgetOption maps a per-person budget bracket to an optional query keyword.
type BudgetOption struct {
	Label   string
	Keyword string
}

var BudgetOptions = []BudgetOption{
	{"상관없음", ""},
	{"~1만원", "저렴한"},
	{"1~1.5만원", "가성비"},
	{"1.5~2만원", ""},
	{"2~3만원", ""},
	{"3만원 이상", "고급"},
}

// ExcludedCategories filters out venues that are not lunch restaurants.
// Matched as substrings of the vendor category string.
var ExcludedCategories = []string{
	"카페",
	"커피",
	"디저트",
	"베이커리",
	"빵",
	"술집",
	"호프",
	"요리주점",
	"포장마차",
	"바(Bar)",
	"편의점",
}

// TimeSlots are the reservable lunch times.
var TimeSlots = []string{"11:00", "11:30", "12:00", "12:30", "13:00", "13:30"}

const (
	MinPartySize     = 2
	MaxPartySize     = 30
	DefaultPartySize = 6
)
