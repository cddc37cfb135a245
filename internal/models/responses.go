package models

import (
	"time"

	"github.com/bragboardhq/backend/pkg/displaytz"
)

// Response types are the serialization boundary: every timestamp leaving
// the API is converted to the display timezone here and nowhere else.
// Storage, filtering and ordering keep the original UTC values.

// DepartmentResponse is the API shape of a Department
type DepartmentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (d *Department) Response(loc *time.Location) DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: displaytz.Convert(d.CreatedAt, loc),
	}
}

// UserResponse is the API shape of a User, without the password hash
type UserResponse struct {
	ID         uint                `json:"id"`
	Email      string              `json:"email"`
	FullName   string              `json:"full_name"`
	IsAdmin    bool                `json:"is_admin"`
	AvatarURL  *string             `json:"avatar_url,omitempty"`
	Department *DepartmentResponse `json:"department,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

func (u *User) Response(loc *time.Location) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsAdmin:   u.IsAdmin,
		AvatarURL: u.AvatarURL,
		CreatedAt: displaytz.Convert(u.CreatedAt, loc),
	}
	if u.Department != nil {
		dep := u.Department.Response(loc)
		resp.Department = &dep
	}
	return resp
}

// ReactionResponse is the API shape of a Reaction
type ReactionResponse struct {
	ID        uint         `json:"id"`
	Kind      string       `json:"kind"`
	User      UserResponse `json:"user"`
	CreatedAt time.Time    `json:"created_at"`
}

func (r *Reaction) Response(loc *time.Location) ReactionResponse {
	return ReactionResponse{
		ID:        r.ID,
		Kind:      r.Kind,
		User:      r.User.Response(loc),
		CreatedAt: displaytz.Convert(r.CreatedAt, loc),
	}
}

// ReactionRemovedResponse is returned when submitting the same reaction
// kind a second time toggles the reaction off.
type ReactionRemovedResponse struct {
	Removed    bool   `json:"removed"`
	ShoutoutID uint   `json:"shoutout_id"`
	Kind       string `json:"kind"`
}

// CommentResponse is the API shape of a Comment
type CommentResponse struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	User      UserResponse `json:"user"`
	ParentID  *uint        `json:"parent_id,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

func (c *Comment) Response(loc *time.Location) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Content:   c.Content,
		User:      c.User.Response(loc),
		ParentID:  c.ParentID,
		CreatedAt: displaytz.Convert(c.CreatedAt, loc),
	}
}

// AttachmentResponse is the API shape of an Attachment
type AttachmentResponse struct {
	ID        uint      `json:"id"`
	FileURL   string    `json:"file_url"`
	FileName  string    `json:"file_name"`
	FileType  string    `json:"file_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (a *Attachment) Response(loc *time.Location) AttachmentResponse {
	return AttachmentResponse{
		ID:        a.ID,
		FileURL:   a.FileURL,
		FileName:  a.FileName,
		FileType:  a.FileType,
		CreatedAt: displaytz.Convert(a.CreatedAt, loc),
	}
}

// ShoutOutResponse is the full API shape of a ShoutOut with its
// recipients, reactions, comments and attachments.
type ShoutOutResponse struct {
	ID           uint                 `json:"id"`
	Content      string               `json:"content"`
	DepartmentID *uint                `json:"department_id,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
	CreatedBy    UserResponse         `json:"created_by"`
	Recipients   []UserResponse       `json:"recipients"`
	Reactions    []ReactionResponse   `json:"reactions"`
	Comments     []CommentResponse    `json:"comments"`
	Attachments  []AttachmentResponse `json:"attachments"`
}

func (s *ShoutOut) Response(loc *time.Location) ShoutOutResponse {
	resp := ShoutOutResponse{
		ID:           s.ID,
		Content:      s.Content,
		DepartmentID: s.DepartmentID,
		CreatedAt:    displaytz.Convert(s.CreatedAt, loc),
		CreatedBy:    s.CreatedBy.Response(loc),
		Recipients:   make([]UserResponse, 0, len(s.Recipients)),
		Reactions:    make([]ReactionResponse, 0, len(s.Reactions)),
		Comments:     make([]CommentResponse, 0, len(s.Comments)),
		Attachments:  make([]AttachmentResponse, 0, len(s.Attachments)),
	}
	for i := range s.Recipients {
		resp.Recipients = append(resp.Recipients, s.Recipients[i].User.Response(loc))
	}
	for i := range s.Reactions {
		resp.Reactions = append(resp.Reactions, s.Reactions[i].Response(loc))
	}
	for i := range s.Comments {
		resp.Comments = append(resp.Comments, s.Comments[i].Response(loc))
	}
	for i := range s.Attachments {
		resp.Attachments = append(resp.Attachments, s.Attachments[i].Response(loc))
	}
	return resp
}

// ShoutOutSummaryResponse is the reduced shout-out shape embedded in reports
type ShoutOutSummaryResponse struct {
	ID        uint         `json:"id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	CreatedBy UserResponse `json:"created_by"`
}

func (s *ShoutOut) SummaryResponse(loc *time.Location) ShoutOutSummaryResponse {
	return ShoutOutSummaryResponse{
		ID:        s.ID,
		Content:   s.Content,
		CreatedAt: displaytz.Convert(s.CreatedAt, loc),
		CreatedBy: s.CreatedBy.Response(loc),
	}
}

// ReportResponse is the API shape of a Report with resolver and reporter detail
type ReportResponse struct {
	ID         uint                    `json:"id"`
	Status     string                  `json:"status"`
	Reason     *string                 `json:"reason,omitempty"`
	CreatedAt  time.Time               `json:"created_at"`
	ResolvedAt *time.Time              `json:"resolved_at,omitempty"`
	Shoutout   ShoutOutSummaryResponse `json:"shoutout"`
	Reporter   UserResponse            `json:"reporter"`
	ResolvedBy *UserResponse           `json:"resolved_by,omitempty"`
}

func (r *Report) Response(loc *time.Location) ReportResponse {
	resp := ReportResponse{
		ID:         r.ID,
		Status:     r.Status,
		Reason:     r.Reason,
		CreatedAt:  displaytz.Convert(r.CreatedAt, loc),
		ResolvedAt: displaytz.ConvertPtr(r.ResolvedAt, loc),
		Shoutout:   r.Shoutout.SummaryResponse(loc),
		Reporter:   r.Reporter.Response(loc),
	}
	if r.ResolvedBy != nil {
		resolvedBy := r.ResolvedBy.Response(loc)
		resp.ResolvedBy = &resolvedBy
	}
	return resp
}

// NotificationResponse embeds the full shout-out the notification points at
type NotificationResponse struct {
	ID        uint             `json:"id"`
	UserID    uint             `json:"user_id"`
	Shoutout  ShoutOutResponse `json:"shoutout"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

func (n *Notification) Response(loc *time.Location) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Shoutout:  n.Shoutout.Response(loc),
		IsRead:    n.IsRead,
		CreatedAt: displaytz.Convert(n.CreatedAt, loc),
	}
}

// NotificationCountResponse carries the unread counter
type NotificationCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// AdminNotificationResponse is the API shape of an AdminNotification
type AdminNotificationResponse struct {
	ID         uint         `json:"id"`
	EventType  string       `json:"event_type"`
	Message    string       `json:"message"`
	Actor      UserResponse `json:"actor"`
	ShoutoutID *uint        `json:"shoutout_id,omitempty"`
	ReportID   *uint        `json:"report_id,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

func (n *AdminNotification) Response(loc *time.Location) AdminNotificationResponse {
	return AdminNotificationResponse{
		ID:         n.ID,
		EventType:  n.EventType,
		Message:    n.Message,
		Actor:      n.Actor.Response(loc),
		ShoutoutID: n.ShoutoutID,
		ReportID:   n.ReportID,
		CreatedAt:  displaytz.Convert(n.CreatedAt, loc),
	}
}

// UserStat pairs a user with an engagement count for admin metrics
type UserStat struct {
	User  UserResponse `json:"user"`
	Count int64        `json:"count"`
}

// AdminMetricsResponse summarizes platform engagement for admins
type AdminMetricsResponse struct {
	TopContributors []UserStat `json:"top_contributors"`
	MostTagged      []UserStat `json:"most_tagged"`
}

// LeaderboardEntry scores a user by shout-outs sent and received
type LeaderboardEntry struct {
	User              UserResponse `json:"user"`
	ShoutoutsSent     int64        `json:"shoutouts_sent"`
	ShoutoutsReceived int64        `json:"shoutouts_received"`
	Points            int64        `json:"points"`
}
