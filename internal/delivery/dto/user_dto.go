package dto

// UserListRequest carries the directory query parameters as received.
// Page is parsed by the usecase so a malformed value becomes a field error.
type UserListRequest struct {
	UserType string
	Search   string
	Page     string
}

type UserListResponse struct {
	Results  []UserResponse `json:"results"`
	Count    int64          `json:"count"`
	Next     *string        `json:"next"`
	Previous *string        `json:"previous"`
}
