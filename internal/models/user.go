package models

// UserProfile is the flattened Farcaster profile returned to the client,
// with the Neynar user score resolved into a single field.
type UserProfile struct {
	FID               int64    `json:"fid"`
	Username          string   `json:"username"`
	DisplayName       string   `json:"displayName"`
	PfpURL            string   `json:"pfpUrl"`
	Bio               string   `json:"bio"`
	FollowerCount     int      `json:"followerCount"`
	FollowingCount    int      `json:"followingCount"`
	PowerBadge        bool     `json:"powerBadge"`
	CustodyAddress    string   `json:"custodyAddress,omitempty"`
	VerifiedAddresses []string `json:"verifiedAddresses"`
	NeynarScore       float64  `json:"neynarScore"`
}
