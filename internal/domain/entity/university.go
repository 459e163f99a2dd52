package entity

type University struct {
	ID          string `json:"id" firestore:"id"`
	Name        string `json:"name" firestore:"name"`
	EmailDomain string `json:"emailDomain" firestore:"emailDomain"`
}
