package constant

import "sort"

// Training-time column names. The preprocessor artifact was fitted on exactly
// these names, punctuation included.
const (
	ColumnGenre                 = "Genre"
	ColumnGeography             = "Geography"
	ColumnPersonalityPopularity = "Personality Popularity"
	ColumnPersonalityGenre      = "Personality-Genre"
	ColumnLogistics             = "Logistics"
	ColumnStoryFormat           = "Story_Format"
)

// StoryColumns is the fixed column order of a Story Record.
var StoryColumns = []string{
	ColumnGenre,
	ColumnGeography,
	ColumnPersonalityPopularity,
	ColumnPersonalityGenre,
	ColumnLogistics,
	ColumnStoryFormat,
}

var (
	GenreOptions = sortedCopy([]string{
		"WAR", "ASTROLOGY", "RELIGIOUS / FAITH", "HEALTH", "NATIONAL THREAT/DEFENCE NEWS",
		"INDIA-PAK", "CRIME/LAW & ORDER", "POLITICAL NEWS/GOVERNMENT NEWS", "FINANCIAL NEWS",
		"SCIENCE/SPACE", "CAREER/EDUCATION", "EVENT/CELEBRATIONS", "WEATHER/ENVIRONMENT",
		"ENTERTAINMENT NEWS", "OTHER", "MISHAPS/FAILURE OF MACHINERY", "SPORTS NEWS",
	})

	GeographyOptions = sortedCopy([]string{
		"INTERNATIONAL", "MANIPUR", "JHARKHAND", "GUJARAT", "INDIAN", "HARYANA", "RAJASTHAN",
		"BIHAR", "UTTAR PRADESH", "OTHER", "DELHI", "MAHARASHTRA", "UTTARAKHAND", "KARNATAKA",
		"JAMMU AND KASHMIR", "CHANDIGARH", "WEST BENGAL", "HIMACHAL PRADESH", "MADHYA PRADESH",
		"TELANGANA", "CHHATTISGARH",
	})

	// Kept in H, M, L order on purpose.
	PersonalityPopularityOptions = []string{"H", "M", "L"}

	PersonalityGenreOptions = sortedCopy([]string{
		"JMM", "Astrologer", "International", "JDU", "Bajrang Dal", "RJD", "Religious",
		"DMK", "BSP", "INC", "AIMIM", "OTHER", "NCP", "Defense", "SP", "BJP", "TMC", "RSS-VHP",
		"AAP", "SS", "Entertainer", "NC", "SBSP", "Cricketer",
	})

	LogisticsOptions = []string{"ON LOCATION", "IN STUDIO", "BOTH"}

	StoryFormatOptions = sortedCopy([]string{"INTERVIEW", "DEBATE OR DISCUSSION", "NEWS REPORT"})
)

// Form keys, as used in query strings, form posts and JSON.
const (
	KeyGenre                 = "genre"
	KeyGeography             = "geography"
	KeyPersonalityPopularity = "personality_popularity"
	KeyPersonalityGenre      = "personality_genre"
	KeyLogistics             = "logistics"
	KeyStoryFormat           = "story_format"
)

// StoryOptionSets maps each form key to its allowed values.
var StoryOptionSets = map[string][]string{
	KeyGenre:                 GenreOptions,
	KeyGeography:             GeographyOptions,
	KeyPersonalityPopularity: PersonalityPopularityOptions,
	KeyPersonalityGenre:      PersonalityGenreOptions,
	KeyLogistics:             LogisticsOptions,
	KeyStoryFormat:           StoryFormatOptions,
}

// IsStoryOption reports whether value is one of the options for key. Matching
// is exact and case-sensitive.
func IsStoryOption(key, value string) bool {
	for _, o := range StoryOptionSets[key] {
		if o == value {
			return true
		}
	}
	return false
}

// Field labels shown next to each dropdown.
const (
	LabelGenre                 = "Select Genre"
	LabelGeography             = "Select Geography (For national stories select INDIAN)"
	LabelPersonalityPopularity = "Select Personality Popularity"
	LabelPersonalityGenre      = "Select Personality-Genre"
	LabelLogistics             = "Select Logistics"
	LabelStoryFormat           = "Select Story Format"
)

// Tier labels, indexed by classifier output.
const (
	TierMinimal = "Minimal viewership"
	TierLow     = "Low viewership"
	TierAverage = "Average viewership"
	TierHigh    = "High viewership"
	TierMax     = "Max viewership"
	TierInvalid = "Invalid tier"
)

var TierLabels = []string{TierMinimal, TierLow, TierAverage, TierHigh, TierMax}

const TierNoteIntro = "The predicted value tier is determined based on a five-point scale, ranging from lowest to highest. " +
	"The tiers are categorized as follows:"

// TierBand is one line of the explanatory TVT note.
type TierBand struct {
	Name  string `json:"name"`
	Range string `json:"range"`
}

var TierBands = []TierBand{
	{Name: "Minimal Viewership", Range: "Less than 213 TVTs"},
	{Name: "Low Viewership", Range: "213 to 244 TVTs"},
	{Name: "Average Viewership", Range: "244 to 276 TVTs"},
	{Name: "High Viewership", Range: "277 to 318 TVTs"},
	{Name: "Maximum Viewership", Range: "319 TVTs and above."},
}

const (
	PageTitle = "Hindi News Story Rating Prediction based on Machine Learning model"

	MessageLoginFailed  = "Username/password is incorrect"
	MessageLoginPrompt  = "Please enter your username and password"
	MessagePredictError = "Prediction failed. Please try again or contact the model owner."

	Disclaimer = "This app leverages machine learning to predict news ratings, offering insights based on historical data. " +
		"Predictions should be combined with domain expertise. " +
		"The developer is not responsible for outcomes based solely on the app's predictions."
)

func sortedCopy(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	sort.Strings(out)
	return out
}
