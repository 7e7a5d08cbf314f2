package api

type Empty struct{}

type PingResponse struct {
	Status string `json:"status"`
}

type ConfigResponse struct {
	TrustchainID   string `json:"trustchainId"`
	PayloadStore   string `json:"payloadStore"`
	TokenAlgorithm string `json:"tokenAlgorithm"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CredentialsResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type ProfileResponse struct {
	ID          string        `json:"id"`
	Email       string        `json:"email"`
	Data        []byte        `json:"data,omitempty"`
	GrantedTo   []UserSummary `json:"grantedTo"`
	GrantedFrom []UserSummary `json:"grantedFrom"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type ChangeEmailRequest struct {
	Email string `json:"email"`
}

type PutDataRequest struct {
	Data []byte `json:"data"`
}

type GetDataRequest struct {
	UserID string `json:"userId"`
}

type GetDataResponse struct {
	Data []byte `json:"data"`
}

type ListUsersResponse struct {
	Users []UserSummary `json:"users"`
}

type ShareRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}
