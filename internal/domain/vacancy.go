package domain

// Vacancy is the raw upstream vacancy shape. It is kept as a generic map so the
// gateway can pass through whatever fields hh.ru returns while still patching
// the few keys the frontend depends on.
type Vacancy = map[string]any

// NotSpecifiedName is substituted for absent employer and area objects so
// consumers never have to check for missing keys.
const NotSpecifiedName = "Not specified"

// Normalize patches a vacancy in place: absent employer and area become a
// placeholder object, absent salary becomes an explicit null. Applied before
// caching, so cached values are always normalized.
func Normalize(v Vacancy) {
	if v == nil {
		return
	}
	if _, ok := v["employer"]; !ok || v["employer"] == nil {
		v["employer"] = map[string]any{"name": NotSpecifiedName}
	}
	if _, ok := v["area"]; !ok || v["area"] == nil {
		v["area"] = map[string]any{"name": NotSpecifiedName}
	}
	if _, ok := v["salary"]; !ok {
		v["salary"] = nil
	}
}

// VacancyDetail is the trimmed projection served for a single vacancy.
type VacancyDetail struct {
	ID          string `json:"id" mapstructure:"id"`
	Name        string `json:"name" mapstructure:"name"`
	Description string `json:"description" mapstructure:"description"`
	Schedule    string `json:"schedule" mapstructure:"schedule"`
	Employment  string `json:"employment" mapstructure:"employment"`
	PublishedAt string `json:"published_at" mapstructure:"published_at"`
	Salary      any    `json:"salary" mapstructure:"salary"`
	Employer    any    `json:"employer" mapstructure:"employer"`
	Area        any    `json:"area" mapstructure:"area"`
	Snippet     any    `json:"snippet" mapstructure:"snippet"`
	Experience  any    `json:"experience" mapstructure:"experience"`
}
