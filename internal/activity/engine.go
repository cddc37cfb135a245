// Package activity decides when a user Notification or moderator-facing
// AdminNotification row must be created. Every method runs against the
// transaction of the triggering mutation, so a rollback discards the
// notification rows together with the primary change. The engine raises
// no domain errors; existence and permission checks belong to handlers.
package activity

import (
	"fmt"
	"strings"
	"unicode"

	"gorm.io/gorm"

	"github.com/bragboardhq/backend/internal/models"
)

const (
	// SnippetLimit bounds the content excerpt in deletion audit messages
	SnippetLimit = 80
	// MessageLimit bounds the stored AdminNotification message
	MessageLimit = 500
)

// Engine materializes notification side effects for qualifying actions
type Engine struct{}

// NewEngine creates the activity engine
func NewEngine() *Engine {
	return &Engine{}
}

// Truncate shortens text to at most limit characters. Leading/trailing
// whitespace is trimmed first; when cutting, trailing whitespace is
// stripped before the "..." marker, and the marker is only appended
// when truncation actually happened.
func Truncate(text string, limit int) string {
	clean := []rune(strings.TrimSpace(text))
	if len(clean) <= limit {
		return string(clean)
	}
	cut := strings.TrimRightFunc(string(clean[:limit-3]), unicode.IsSpace)
	return cut + "..."
}

// OnShoutOutCreated creates one Notification per distinct recipient,
// skipping the actor when they tagged themselves.
func (e *Engine) OnShoutOutCreated(tx *gorm.DB, shout *models.ShoutOut, recipientIDs []uint, actorID uint) error {
	seen := make(map[uint]struct{}, len(recipientIDs))
	for _, rid := range recipientIDs {
		if _, dup := seen[rid]; dup {
			continue
		}
		seen[rid] = struct{}{}
		if rid == actorID {
			continue
		}
		n := &models.Notification{UserID: rid, ShoutoutID: shout.ID}
		if err := tx.Create(n).Error; err != nil {
			return err
		}
	}
	return nil
}

// OnReactionAdded notifies the shout-out author of a new reaction,
// unless they reacted themselves or were already notified for this
// shout-out by an earlier comment or reaction.
func (e *Engine) OnReactionAdded(tx *gorm.DB, shout *models.ShoutOut, reactorID uint) error {
	return e.notifyAuthor(tx, shout, reactorID)
}

// OnCommentAdded notifies the shout-out author of a new comment, with
// the same dedup rule as reactions.
func (e *Engine) OnCommentAdded(tx *gorm.DB, shout *models.ShoutOut, commenterID uint) error {
	return e.notifyAuthor(tx, shout, commenterID)
}

func (e *Engine) notifyAuthor(tx *gorm.DB, shout *models.ShoutOut, actorID uint) error {
	if shout.CreatedByID == actorID {
		return nil
	}
	var count int64
	err := tx.Model(&models.Notification{}).
		Where("user_id = ? AND shoutout_id = ?", shout.CreatedByID, shout.ID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return tx.Create(&models.Notification{UserID: shout.CreatedByID, ShoutoutID: shout.ID}).Error
}

// OnShoutOutDeleted records an audit row when a non-admin deletes their
// own shout-out. An admin removing someone else's post is a moderation
// action and stays silent. The shout-out id appears only in the message
// text since the row itself is about to disappear.
func (e *Engine) OnShoutOutDeleted(tx *gorm.DB, shout *models.ShoutOut, actor *models.User) error {
	if actor.IsAdmin || shout.CreatedByID != actor.ID {
		return nil
	}
	snippet := Truncate(shout.Content, SnippetLimit)
	message := fmt.Sprintf("%s deleted their shout-out (#%d): \"%s\"", actor.FullName, shout.ID, snippet)
	return e.notifyAdmins(tx, actor, models.EventShoutOutDeleted, message, nil, nil)
}

// OnCommentDeleted records an audit row when a non-admin deletes their
// own comment, referencing the parent shout-out (the comment itself no
// longer exists after deletion).
func (e *Engine) OnCommentDeleted(tx *gorm.DB, comment *models.Comment, actor *models.User) error {
	if actor.IsAdmin || comment.UserID != actor.ID {
		return nil
	}
	snippet := Truncate(comment.Content, SnippetLimit)
	message := fmt.Sprintf("%s deleted a comment on shout-out #%d: \"%s\"", actor.FullName, comment.ShoutoutID, snippet)
	shoutoutID := comment.ShoutoutID
	return e.notifyAdmins(tx, actor, models.EventCommentDeleted, message, &shoutoutID, nil)
}

// OnReportSubmitted records an audit row for every submitted report.
func (e *Engine) OnReportSubmitted(tx *gorm.DB, shout *models.ShoutOut, report *models.Report, actor *models.User) error {
	reasonNote := ""
	if report.Reason != nil {
		reasonNote = " Reason: " + *report.Reason
	}
	message := fmt.Sprintf("%s reported shout-out #%d.%s", actor.FullName, shout.ID, reasonNote)
	shoutoutID := shout.ID
	reportID := report.ID
	return e.notifyAdmins(tx, actor, models.EventReportSubmitted, message, &shoutoutID, &reportID)
}

func (e *Engine) notifyAdmins(tx *gorm.DB, actor *models.User, eventType, message string, shoutoutID, reportID *uint) error {
	note := &models.AdminNotification{
		EventType:  eventType,
		Message:    Truncate(message, MessageLimit),
		ActorID:    actor.ID,
		ShoutoutID: shoutoutID,
		ReportID:   reportID,
	}
	return tx.Create(note).Error
}
