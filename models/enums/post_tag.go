package enums

import "strings"

// PostTag 帖子标签，取值限定在固定词表内
type PostTag string

const (
	TagTechnology    PostTag = "technology"
	TagProgramming   PostTag = "programming"
	TagDesign        PostTag = "design"
	TagBusiness      PostTag = "business"
	TagHealth        PostTag = "health"
	TagScience       PostTag = "science"
	TagLifestyle     PostTag = "lifestyle"
	TagTravel        PostTag = "travel"
	TagFood          PostTag = "food"
	TagEducation     PostTag = "education"
	TagEntertainment PostTag = "entertainment"
	TagSports        PostTag = "sports"
)

// AllPostTags 完整词表，顺序固定
var AllPostTags = []PostTag{
	TagTechnology, TagProgramming, TagDesign, TagBusiness,
	TagHealth, TagScience, TagLifestyle, TagTravel,
	TagFood, TagEducation, TagEntertainment, TagSports,
}

// IsValid 判断标签是否在词表内
func (t PostTag) IsValid() bool {
	for _, v := range AllPostTags {
		if v == t {
			return true
		}
	}
	return false
}

// ParsePostTag 去空白、转小写后校验
func ParsePostTag(raw string) (PostTag, bool) {
	t := PostTag(strings.ToLower(strings.TrimSpace(raw)))
	return t, t.IsValid()
}
