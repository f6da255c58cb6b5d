package progression

// PointsPerLevel is the width of one level.
const PointsPerLevel = 200

type Rank string

const (
	RankNovice            Rank = "Novice"
	RankDeveloping        Rank = "Developing"
	RankFocusMaster       Rank = "Focus Master"
	RankDopamineArchitect Rank = "Dopamine Architect"
	RankLegend            Rank = "Legend"
)

const (
	ColorBlue   = "#007AFF"
	ColorPurple = "#AF52DE"
	ColorOrange = "#FF9500"
	ColorRed    = "#FF3B30"
	ColorIndigo = "#5856D6"
)

type LevelInfo struct {
	Level                int     `json:"level"`
	Rank                 Rank    `json:"rank"`
	ThemeColor           string  `json:"theme_color"`
	TotalPoints          int     `json:"total_points"`
	RemainingToNextLevel int     `json:"remaining_to_next_level"`
	LevelFraction        float64 `json:"level_fraction"`
}

type tier struct {
	rank  Rank
	color string
}

// tiers[i] belongs to level i+1; the last entry covers every level above.
var tiers = []tier{
	{RankNovice, ColorBlue},
	{RankDeveloping, ColorPurple},
	{RankFocusMaster, ColorOrange},
	{RankDopamineArchitect, ColorRed},
	{RankLegend, ColorIndigo},
}

func tierFor(level int) tier {
	if level < 1 {
		level = 1
	}
	if level > len(tiers) {
		return tiers[len(tiers)-1]
	}
	return tiers[level-1]
}

// LevelOf gives the level reached with totalPoints. Always at least 1.
func LevelOf(totalPoints int) int {
	if totalPoints < 0 {
		totalPoints = 0
	}
	return totalPoints/PointsPerLevel + 1
}

func RankOf(level int) Rank {
	return tierFor(level).rank
}

func ThemeColorOf(level int) string {
	return tierFor(level).color
}

// LevelFor resolves level, rank, color and progress inside the current level.
func LevelFor(totalPoints int) LevelInfo {
	if totalPoints < 0 {
		totalPoints = 0
	}
	level := LevelOf(totalPoints)
	t := tierFor(level)
	return LevelInfo{
		Level:                level,
		Rank:                 t.rank,
		ThemeColor:           t.color,
		TotalPoints:          totalPoints,
		RemainingToNextLevel: level*PointsPerLevel - totalPoints,
		LevelFraction:        float64(totalPoints%PointsPerLevel) / PointsPerLevel,
	}
}
