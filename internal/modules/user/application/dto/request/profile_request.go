package request

type ProfileRequest struct {
	FullName        string   `json:"full_name"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Bio             string   `json:"bio"`
	YearsExperience int      `json:"years_experience" binding:"min=0,max=80"`
	Specializations []string `json:"specializations"`
	LinkedinUrl     string   `json:"linkedin_url" binding:"omitempty,http_url"`
	GithubUrl       string   `json:"github_url" binding:"omitempty,http_url"`
	WebsiteUrl      string   `json:"website_url" binding:"omitempty,http_url"`
}
