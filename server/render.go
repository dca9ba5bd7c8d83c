package server

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonwraymond/kagglemcp/kaggle"
)

// formatFileSize renders a byte count as a human-readable string.
func formatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 B"
	}

	units := []string{"B", "KB", "MB", "GB", "TB"}
	size := float64(bytes)
	i := 0
	for size >= 1024 && i < len(units)-1 {
		size /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", size, units[i])
}

func renderActiveCompetitions(comps []kaggle.Competition, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Active Kaggle Competitions\n\n")

	count := 0
	for _, comp := range comps {
		if !comp.Active(now) {
			continue
		}
		if count >= 20 {
			break
		}
		count++

		deadline := "Not specified"
		if !comp.Deadline.IsZero() {
			deadline = comp.Deadline.Format(time.RFC3339)
		}

		fmt.Fprintf(&b, "## %s\n", comp.Title)
		fmt.Fprintf(&b, "- **ID**: %s\n", comp.Ref)
		fmt.Fprintf(&b, "- **Category**: %s\n", comp.Category)
		fmt.Fprintf(&b, "- **Reward**: %s\n", comp.Reward)
		fmt.Fprintf(&b, "- **Deadline**: %s\n", deadline)
		fmt.Fprintf(&b, "- **Teams**: %d\n", comp.TotalTeams)
		fmt.Fprintf(&b, "- **URL**: %s\n\n", comp.URL)
	}

	if count == 0 {
		b.WriteString("No active competitions found.\n")
	}
	return b.String()
}

func renderPopularDatasets(datasets []kaggle.Dataset) string {
	var b strings.Builder
	b.WriteString("# Popular Kaggle Datasets\n\n")

	for _, ds := range datasets {
		updated := "Unknown"
		if !ds.LastUpdated.IsZero() {
			updated = ds.LastUpdated.Format(time.RFC3339)
		}

		fmt.Fprintf(&b, "## %s\n", ds.Title)
		fmt.Fprintf(&b, "- **Reference**: %s\n", ds.Ref)
		fmt.Fprintf(&b, "- **Size**: %s\n", formatFileSize(ds.TotalBytes))
		fmt.Fprintf(&b, "- **Downloads**: %d\n", ds.DownloadCount)
		fmt.Fprintf(&b, "- **Votes**: %d\n", ds.VoteCount)
		fmt.Fprintf(&b, "- **Usability**: %.1f\n", ds.UsabilityRating)
		fmt.Fprintf(&b, "- **License**: %s\n", ds.LicenseName)
		fmt.Fprintf(&b, "- **Last Updated**: %s\n", updated)
		fmt.Fprintf(&b, "- **URL**: https://www.kaggle.com/datasets/%s\n\n", ds.Ref)
	}
	return b.String()
}

// countByCategory tallies competitions per category, most common first.
func countByCategory(comps []kaggle.Competition) []categoryCount {
	counts := make(map[string]int)
	for _, comp := range comps {
		category := comp.Category
		if category == "" {
			category = "Unknown"
		}
		counts[category]++
	}

	sorted := make([]categoryCount, 0, len(counts))
	for category, n := range counts {
		sorted = append(sorted, categoryCount{category, n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].category < sorted[j].category
	})
	return sorted
}

type categoryCount struct {
	category string
	count    int
}

// hasCashReward reports whether the reward names a dollar amount rather
// than points or knowledge.
func hasCashReward(comp kaggle.Competition) bool {
	return strings.Contains(comp.Reward, "Usd") || strings.HasPrefix(comp.Reward, "$")
}

func renderHotTopics(comps []kaggle.Competition, datasets []kaggle.Dataset) string {
	var b strings.Builder
	b.WriteString("# Trending Topics & Techniques on Kaggle\n\n")

	b.WriteString("## Hot Competition Categories\n\n")
	sample := comps
	if len(sample) > 20 {
		sample = sample[:20]
	}
	for _, cc := range countByCategory(sample) {
		fmt.Fprintf(&b, "- **%s**: %d active competitions\n", cc.category, cc.count)
	}

	b.WriteString("\n## High-Value Recent Competitions\n\n")
	highValue := 0
	for _, comp := range comps {
		if !hasCashReward(comp) {
			continue
		}
		if highValue >= 5 {
			break
		}
		highValue++
		fmt.Fprintf(&b, "- **%s**: %s\n", comp.Title, comp.Reward)
	}
	if highValue == 0 {
		b.WriteString("- No cash-prize competitions in the current listing\n")
	}

	b.WriteString("\n## Trending Dataset Types\n\n")
	var small, medium, large int
	sampleDS := datasets
	if len(sampleDS) > 50 {
		sampleDS = sampleDS[:50]
	}
	for _, ds := range sampleDS {
		switch {
		case ds.TotalBytes < 10<<20:
			small++
		case ds.TotalBytes < 1<<30:
			medium++
		default:
			large++
		}
	}
	fmt.Fprintf(&b, "- **Small Datasets**: %d popular entries\n", small)
	fmt.Fprintf(&b, "- **Medium Datasets**: %d popular entries\n", medium)
	fmt.Fprintf(&b, "- **Large Datasets**: %d popular entries\n", large)

	b.WriteString("\n## Emerging Patterns\n\n")
	b.WriteString("- **AI/ML Focus**: General artificial intelligence challenges gaining traction\n")
	b.WriteString("- **Real-world Impact**: More competitions focusing on social good\n")
	b.WriteString("- **Multi-modal Data**: Increasing use of combined text, image, and sensor data\n")
	b.WriteString("- **Time Series**: Growing interest in forecasting and temporal data\n")
	return b.String()
}

func renderDeadlines(comps []kaggle.Competition, now time.Time) string {
	type upcoming struct {
		comp kaggle.Competition
		days int
	}

	var entries []upcoming
	for _, comp := range comps {
		if comp.Deadline.IsZero() {
			continue
		}
		days := int(comp.Deadline.Sub(now).Hours() / 24)
		if days >= 0 && days <= 60 {
			entries = append(entries, upcoming{comp, days})
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].days < entries[j].days })

	var b strings.Builder
	b.WriteString("# Upcoming Competition Deadlines\n\n")

	b.WriteString("## Next 30 Days\n\n")
	listed := 0
	for _, e := range entries {
		if e.days > 30 || listed >= 10 {
			continue
		}
		listed++

		urgency := "Soon"
		if e.days <= 7 {
			urgency = "URGENT"
		}
		fmt.Fprintf(&b, "- **%s** (%s)\n", e.comp.Title, urgency)
		fmt.Fprintf(&b, "  - Days left: %d\n", e.days)
		fmt.Fprintf(&b, "  - Reward: %s\n", e.comp.Reward)
		fmt.Fprintf(&b, "  - Deadline: %s\n\n", e.comp.Deadline.Format("2006-01-02 15:04"))
	}
	if listed == 0 {
		b.WriteString("No deadlines in the next 30 days.\n\n")
	}

	b.WriteString("## 31-60 Days Out\n\n")
	listed = 0
	for _, e := range entries {
		if e.days <= 30 {
			continue
		}
		listed++
		fmt.Fprintf(&b, "- **%s**\n", e.comp.Title)
		fmt.Fprintf(&b, "  - Days left: %d\n", e.days)
		fmt.Fprintf(&b, "  - Reward: %s\n\n", e.comp.Reward)
	}
	if listed == 0 {
		b.WriteString("No deadlines in this window.\n")
	}
	return b.String()
}

func renderBeginnerGuide(comps []kaggle.Competition, datasets []kaggle.Dataset) string {
	var b strings.Builder
	b.WriteString("# Kaggle Getting Started Guide\n\n")

	b.WriteString("## Recommended Learning Path\n\n")
	b.WriteString("### Step 1: Start with These Competitions\n\n")
	listed := 0
	for _, comp := range comps {
		if !strings.EqualFold(comp.Category, "gettingStarted") && !strings.Contains(comp.Category, "Getting Started") {
			continue
		}
		if listed >= 5 {
			break
		}
		listed++
		fmt.Fprintf(&b, "- **%s**\n", comp.Title)
		fmt.Fprintf(&b, "  - Category: %s\n", comp.Category)
		fmt.Fprintf(&b, "  - Reward: %s\n", comp.Reward)
		fmt.Fprintf(&b, "  - URL: %s\n\n", comp.URL)
	}
	if listed == 0 {
		b.WriteString("- No getting-started competitions in the current listing\n\n")
	}

	b.WriteString("### Step 2: Practice Datasets\n\n")
	listed = 0
	sample := datasets
	if len(sample) > 20 {
		sample = sample[:20]
	}
	for _, ds := range sample {
		if ds.UsabilityRating < 8.0 {
			continue
		}
		if listed >= 5 {
			break
		}
		listed++
		fmt.Fprintf(&b, "- **%s**\n", ds.Title)
		fmt.Fprintf(&b, "  - Reference: %s\n", ds.Ref)
		fmt.Fprintf(&b, "  - Size: %s\n", formatFileSize(ds.TotalBytes))
		fmt.Fprintf(&b, "  - Usability: %.1f/10\n\n", ds.UsabilityRating)
	}
	if listed == 0 {
		b.WriteString("- No high-usability datasets in the current listing\n\n")
	}

	b.WriteString("## Learning Recommendations\n\n")
	b.WriteString("### Beginner Track\n")
	b.WriteString("1. **Titanic**: Classification basics\n")
	b.WriteString("2. **House Prices**: Regression techniques\n")
	b.WriteString("3. **Digit Recognizer**: Computer vision intro\n")
	b.WriteString("4. **NLP Disaster Tweets**: Natural language processing\n\n")

	b.WriteString("### Intermediate Track\n")
	b.WriteString("1. **Store Sales Forecasting**: Time series analysis\n")
	b.WriteString("2. **Spaceship Titanic**: Feature engineering\n")
	b.WriteString("3. **Connect X**: Reinforcement learning\n\n")

	b.WriteString("## Pro Tips\n\n")
	b.WriteString("- Start with 'Getting Started' competitions for learning\n")
	b.WriteString("- Read winning solutions and public notebooks\n")
	b.WriteString("- Join Kaggle Learn for structured courses\n")
	b.WriteString("- Participate in discussions to learn from community\n")
	b.WriteString("- Focus on understanding data before complex models\n")
	return b.String()
}

func renderPlatformStats(comps []kaggle.Competition, datasets []kaggle.Dataset, models []kaggle.Model) string {
	var b strings.Builder
	b.WriteString("# Kaggle Platform Statistics\n\n")

	b.WriteString("## Competition Overview\n\n")
	fmt.Fprintf(&b, "- **Total Active Competitions**: %d\n", len(comps))

	categories := countByCategory(comps)
	var prizePool int64
	highValue := 0
	for _, comp := range comps {
		if hasCashReward(comp) {
			highValue++
			prizePool += parseReward(comp.Reward)
		}
	}
	fmt.Fprintf(&b, "- **Total Prize Pool**: $%d\n", prizePool)
	fmt.Fprintf(&b, "- **Categories**: %d\n\n", len(categories))
	for _, cc := range categories {
		fmt.Fprintf(&b, "  - %s: %d competitions\n", cc.category, cc.count)
	}

	b.WriteString("\n## Dataset Overview\n\n")
	fmt.Fprintf(&b, "- **Total Popular Datasets**: %d\n", len(datasets))

	var downloads int64
	var usabilitySum float64
	rated := 0
	for _, ds := range datasets {
		downloads += int64(ds.DownloadCount)
		if ds.UsabilityRating > 0 {
			usabilitySum += ds.UsabilityRating
			rated++
		}
	}
	fmt.Fprintf(&b, "- **Total Downloads**: %d\n", downloads)
	if rated > 0 {
		fmt.Fprintf(&b, "- **Average Usability Rating**: %.1f/10\n", usabilitySum/float64(rated))
	}

	b.WriteString("\n## Model Hub Overview\n\n")
	fmt.Fprintf(&b, "- **Total Available Models**: %d\n", len(models))

	b.WriteString("\n## License Distribution\n\n")
	licenses := make(map[string]int)
	for _, ds := range datasets {
		name := ds.LicenseName
		if name == "" {
			name = "Unknown"
		}
		licenses[name]++
	}
	type licenseCount struct {
		name  string
		count int
	}
	sorted := make([]licenseCount, 0, len(licenses))
	for name, n := range licenses {
		sorted = append(sorted, licenseCount{name, n})
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].count != sorted[j].count {
			return sorted[i].count > sorted[j].count
		}
		return sorted[i].name < sorted[j].name
	})
	for i, lc := range sorted {
		if i >= 5 {
			break
		}
		fmt.Fprintf(&b, "- **%s**: %d datasets\n", lc.name, lc.count)
	}

	b.WriteString("\n## Platform Insights\n\n")
	if len(categories) > 0 {
		fmt.Fprintf(&b, "- **Most Popular Category**: %s\n", categories[0].category)
		fmt.Fprintf(&b, "- **Average Competitions per Category**: %.1f\n", float64(len(comps))/float64(len(categories)))
	}
	fmt.Fprintf(&b, "- **High-Value Competitions**: %d\n", highValue)
	return b.String()
}

// parseReward extracts a dollar amount from reward strings such as
// "$25,000 Usd". Anything unparseable contributes zero.
func parseReward(reward string) int64 {
	cleaned := strings.NewReplacer("$", "", ",", "", " Usd", "", "Usd", "").Replace(reward)
	cleaned = strings.TrimSpace(cleaned)

	var amount int64
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return 0
		}
		amount = amount*10 + int64(r-'0')
	}
	return amount
}
