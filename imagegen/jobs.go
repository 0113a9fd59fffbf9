package imagegen

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"coastal-realty/models"
	"coastal-realty/store"
)

// Job is one image to generate.
type Job struct {
	Name       string
	Prompt     string
	OutputPath string
}

const promptStyle = "Bright natural light, editorial travel photography, no text, no logos, no people facing the camera."

// NeighborhoodJobs returns one hero image per distinct property neighborhood,
// in order of first appearance.
func NeighborhoodJobs(ds *store.Dataset, outDir string) []Job {
	var jobs []Job
	seen := make(map[string]bool)
	for _, p := range ds.Properties() {
		if p.Neighborhood == "" || seen[p.Neighborhood] {
			continue
		}
		seen[p.Neighborhood] = true
		jobs = append(jobs, Job{
			Name: p.Neighborhood,
			Prompt: fmt.Sprintf("Wide establishing shot of the %s neighborhood in a Gulf Coast beach town: "+
				"streets, homes and the water nearby. %s", p.Neighborhood, promptStyle),
			OutputPath: filepath.Join(outDir, "neighborhoods", Slugify(p.Neighborhood)+".png"),
		})
	}
	return jobs
}

// PlaceJobs returns a card image for every place, optionally limited to categories.
func PlaceJobs(ds *store.Dataset, outDir string, categories ...models.Category) []Job {
	var jobs []Job
	for _, p := range ds.Places() {
		if len(categories) > 0 && !containsCategory(categories, p.Category) {
			continue
		}
		subject := p.ShortDescription
		if subject == "" {
			subject = p.Subcategory
		}
		jobs = append(jobs, Job{
			Name: p.Name,
			Prompt: fmt.Sprintf("%s, a %s spot near %s. %s %s",
				p.Name, strings.ToLower(p.Category.Label()), p.Neighborhood, subject, promptStyle),
			OutputPath: filepath.Join(outDir, string(p.Category), p.Slug+".png"),
		})
	}
	return jobs
}

// GuideJobs returns a cover image per monthly guide.
func GuideJobs(ds *store.Dataset, outDir string) []Job {
	var jobs []Job
	for _, g := range ds.MonthlyGuides() {
		jobs = append(jobs, Job{
			Name: g.Title,
			Prompt: fmt.Sprintf("The beach and town in %s: %s %s",
				g.Month, g.Summary, promptStyle),
			OutputPath: filepath.Join(outDir, "monthly-guides", g.Slug+".png"),
		})
	}
	return jobs
}

func containsCategory(cs []models.Category, c models.Category) bool {
	for _, x := range cs {
		if x == c {
			return true
		}
	}
	return false
}

// Slugify lowercases s and joins alphanumeric runs with hyphens.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
