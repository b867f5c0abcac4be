package model

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	PhotoURL string `json:"photoUrl"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

type LessonRequest struct {
	Name   string `json:"name"`
	Number int    `json:"number"`
}

type VocabularyRequest struct {
	Word          string `json:"word"`
	Pronunciation string `json:"pronunciation"`
	Meaning       string `json:"meaning"`
	WhenToSay     string `json:"when_to_say"`
	LessonNumber  int    `json:"lesson_no"`
}

type TutorialRequest struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
