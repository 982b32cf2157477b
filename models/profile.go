package models

// Profile represents the single portfolio owner profile
type Profile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	AvatarURL   string `json:"avatarUrl"`
	ResumeURL   string `json:"resumeUrl"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
}

// UpdateProfileRequest represents the request body for updating the profile
type UpdateProfileRequest struct {
	Name        string `json:"name"`
	Headline    string `json:"headline"`
	Bio         string `json:"bio"`
	Email       string `json:"email"`
	Location    string `json:"location"`
	AvatarURL   string `json:"avatarUrl"`
	ResumeURL   string `json:"resumeUrl"`
	GithubURL   string `json:"githubUrl"`
	LinkedinURL string `json:"linkedinUrl"`
}
