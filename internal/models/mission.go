package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Mission is a catalog-defined rewardable action. MissionID is the stable
// trigger key the clients send (e.g. "open_app") and is immutable once seeded.
type Mission struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	MissionID   string             `bson:"missionId" json:"missionId"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Points      int                `bson:"points" json:"points"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"`
}

// Well-known mission triggers.
const (
	MissionOpenApp            = "open_app"
	MissionReadNews           = "read_news"
	MissionReportWaste        = "report_waste"
	MissionCheckDisposalGuide = "check_disposal_guide"
	MissionScanQR             = "scan_qr"
	MissionStreak             = "streak"
)
