package analysis

import (
	"strings"

	"github.com/vestiplan/vestiplan-backend/pkg/enums"
)

// Category levels used by the listing form. The model replies with a free
// subcategory string; keyword rules dispatch it onto the catalog tree.
const (
	defaultMainCategory = "Femmes"
	defaultSubcategory  = "Vêtements"
)

type categoryRule struct {
	keywords    []string
	subcategory string
	item        string
}

// Rule order matters: the first match wins.
var categoryRules = []categoryRule{
	{keywords: []string{"robe"}, subcategory: "Vêtements", item: "Robes"},
	{keywords: []string{"t-shirt", "tee-shirt"}, subcategory: "Vêtements", item: "T-shirts"},
	{keywords: []string{"top", "débardeur", "tank"}, subcategory: "Vêtements", item: "Tops & débardeurs"},
	{keywords: []string{"chemis", "blouse"}, subcategory: "Vêtements", item: "Chemises & blouses"},
	{keywords: []string{"pull", "sweat", "hoodie", "gilet"}, subcategory: "Vêtements", item: "Pulls, sweats & hoodies"},
	{keywords: []string{"manteau", "veste", "blouson", "jacket"}, subcategory: "Vêtements", item: "Manteaux & vestes"},
	{keywords: []string{"jean"}, subcategory: "Vêtements", item: "Jeans"},
	{keywords: []string{"pantalon"}, subcategory: "Vêtements", item: "Pantalons"},
	{keywords: []string{"short"}, subcategory: "Vêtements", item: "Shorts"},
	{keywords: []string{"jupe"}, subcategory: "Vêtements", item: "Jupes"},
	{keywords: []string{"maillot"}, subcategory: "Vêtements", item: "Maillots de bain"},
	{keywords: []string{"sport"}, subcategory: "Vêtements", item: "Sportswear"},
	{keywords: []string{"basket", "sneaker"}, subcategory: "Chaussures", item: "Baskets"},
	{keywords: []string{"bottine"}, subcategory: "Chaussures", item: "Bottines"},
	{keywords: []string{"botte"}, subcategory: "Chaussures", item: "Bottes"},
	{keywords: []string{"sandale"}, subcategory: "Chaussures", item: "Sandales"},
	{keywords: []string{"talon"}, subcategory: "Chaussures", item: "Talons"},
}

var shoeKeywords = []string{"basket", "sneaker", "botte", "bottine", "sandale", "talon"}

// Reclassify maps the model's free-form subcategory string onto the
// three-level category tree used by listings.
func Reclassify(rawSubcategory string) (mainCategory, subcategory, itemCategory string) {
	mainCategory = defaultMainCategory
	subcategory = defaultSubcategory

	lowered := strings.ToLower(strings.TrimSpace(rawSubcategory))
	if lowered == "" {
		return mainCategory, subcategory, ""
	}

	for _, rule := range categoryRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return mainCategory, rule.subcategory, rule.item
			}
		}
	}

	// Bags dispatch on a secondary keyword.
	if strings.Contains(lowered, "sac") {
		switch {
		case strings.Contains(lowered, "dos"):
			return mainCategory, "Sacs", "Sacs à dos"
		case strings.Contains(lowered, "bandoulière"):
			return mainCategory, "Sacs", "Sacs bandoulière"
		default:
			return mainCategory, "Sacs", "Sacs à main"
		}
	}

	return mainCategory, subcategory, ""
}

// IsShoeCategory reports whether the raw subcategory names footwear,
// which controls the default size hint.
func IsShoeCategory(rawSubcategory string) bool {
	lowered := strings.ToLower(rawSubcategory)
	for _, keyword := range shoeKeywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

var conditionVocabulary = map[string]enums.ArticleCondition{
	"new_with_tags":    enums.ArticleConditionNewWithTags,
	"new_without_tags": enums.ArticleConditionNewWithoutTags,
	"new_with_tag":     enums.ArticleConditionNewWithTag,
	"new_without_tag":  enums.ArticleConditionNewWithoutTag,
	"very_good":        enums.ArticleConditionVeryGood,
	"good":             enums.ArticleConditionGood,
	"satisfactory":     enums.ArticleConditionSatisfactory,
}

// MapCondition converts the model's condition vocabulary onto the enum.
// Unknown values map to nil.
func MapCondition(raw string) *enums.ArticleCondition {
	condition, ok := conditionVocabulary[strings.ToLower(strings.TrimSpace(raw))]
	if !ok {
		return nil
	}
	return &condition
}

// MapSeason converts the model's season vocabulary onto the enum.
// Unknown values map to undefined.
func MapSeason(raw string) enums.Season {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	if normalized == "all_seasons" {
		return enums.SeasonAllSeasons
	}
	if season, err := enums.ParseSeason(normalized); err == nil {
		return season
	}
	return enums.SeasonUndefined
}
