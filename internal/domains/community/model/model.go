package model

import (
	"slices"
	"strings"

	gModel "tourismrelay/shared/model"
)

const (
	TableName  = "communities"
	EntityName = "community"

	FieldID   = "id"
	FieldName = "name"
)

const (
	ServiceGuidedWalk      = "guided_walk"
	ServiceHomestay        = "homestay"
	ServiceCulturalEvening = "cultural_evening"
	ServiceBushBreakfast   = "bush_breakfast"
	ServiceRhinoSanctuary  = "rhino_sanctuary"
	ServiceBeadingWorkshop = "beading_workshop"
)

// Services is the catalog in the order stewards see it.
var Services = []string{
	ServiceGuidedWalk,
	ServiceHomestay,
	ServiceCulturalEvening,
	ServiceBushBreakfast,
	ServiceRhinoSanctuary,
	ServiceBeadingWorkshop,
}

var displayNames = map[string]string{
	ServiceGuidedWalk:      "Guided Walk",
	ServiceHomestay:        "Homestay",
	ServiceCulturalEvening: "Cultural Evening",
	ServiceBushBreakfast:   "Bush Breakfast",
	ServiceRhinoSanctuary:  "Rhino Sanctuary",
	ServiceBeadingWorkshop: "Beading Workshop",
}

// DisplayName returns the human label for a service tag, or the tag itself.
func DisplayName(tag string) string {
	if name, ok := displayNames[tag]; ok {
		return name
	}

	return tag
}

// DisplayNames joins the labels of tags with ", ".
func DisplayNames(tags []string) string {
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, DisplayName(tag))
	}

	return strings.Join(names, ", ")
}

type Community struct {
	ID              string            `db:"id"`
	Name            string            `db:"name"`
	StewardName     string            `db:"steward_name"`
	StewardPhone    string            `db:"steward_phone"`
	ServicesOffered gModel.StringList `db:"services_offered"`
	Pricing         gModel.JSONMap    `db:"pricing"`
	gModel.Metadata
}

func (c Community) Exists() bool {
	return c.ID != ""
}

func (c Community) Offers(service string) bool {
	return slices.Contains(c.ServicesOffered, service)
}
