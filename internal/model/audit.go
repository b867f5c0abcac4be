package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// AuditEntry records a security-relevant action. Writes are best
// effort: a failed audit insert never fails the originating request.
type AuditEntry struct {
	ID        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Actor     string        `bson:"actor" json:"actor"`
	Action    string        `bson:"action" json:"action"`
	Target    string        `bson:"target,omitempty" json:"target,omitempty"`
	Detail    string        `bson:"detail,omitempty" json:"detail,omitempty"`
	CreatedAt time.Time     `bson:"createdAt" json:"created_at"`
}

const (
	AuditActionRegister   = "user.register"
	AuditActionLogin      = "user.login"
	AuditActionRoleChange = "user.role_change"
	AuditActionCreate     = "resource.create"
	AuditActionUpdate     = "resource.update"
	AuditActionDelete     = "resource.delete"
)
