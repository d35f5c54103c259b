// Package model holds the GORM table structs the recorders write.
package model

import (
	"database/sql"
	"time"

	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels lists every table migrated by the GORM recorders, parents first.
var DatabaseModels = []any{
	&RecorderInfo{},
	&Match{},
	&Player{},
	&PlayerState{},
	&PassIntent{},
	&MovementSwap{},
	&Lunge{},
	&Contact{},
}

// RecorderInfo identifies the installation that produced a database.
type RecorderInfo struct {
	gorm.Model
	ClubName    string `json:"clubName" gorm:"size:127"`
	Description string `json:"description" gorm:"size:255"`
	Website     string `json:"website" gorm:"size:255"`
}

func (*RecorderInfo) TableName() string {
	return "recorder_infos"
}

// Match is one recording session.
//
// Driver command: :MATCH:START: "name"
type Match struct {
	gorm.Model
	SessionID string       `json:"sessionId" gorm:"size:36;uniqueIndex:idx_match_session_id"`
	Name      string       `json:"name" gorm:"size:127"`
	StartTime time.Time    `json:"startTime" gorm:"index:idx_match_start"`
	EndTime   sql.NullTime `json:"endTime" gorm:"default:NULL"`
}

func (*Match) TableName() string {
	return "matches"
}

// Player is registered once per spawn. Uses composite primary key (MatchID, PlayerID).
//
// Driver command: :SPAWN: id "name" age team movement action [x y speed]
type Player struct {
	MatchID   uint      `json:"matchId" gorm:"primaryKey;autoIncrement:false"`
	PlayerID  uint16    `json:"playerId" gorm:"primaryKey;autoIncrement:false"`
	Match     Match     `gorm:"foreignkey:MatchID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `json:"createdAt"`
	JoinTime  time.Time `json:"joinTime" gorm:"NOT NULL;index:idx_player_join_time"`
	JoinTick  uint      `json:"joinTick"`
	Name      string    `json:"name" gorm:"size:64"`
	Age       int       `json:"age"`
	Team      int       `json:"team" gorm:"index:idx_player_team"`
}

func (*Player) TableName() string {
	return "players"
}

// PlayerState is a snapshot taken after a move or action.
type PlayerState struct {
	ID          uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	Time        time.Time  `json:"time"`
	MatchID     uint       `json:"matchId" gorm:"index:idx_playerstate_match_id"`
	Tick        uint       `json:"tick" gorm:"index:idx_playerstate_tick"`
	PlayerID    uint16     `json:"playerId" gorm:"index:idx_playerstate_player_id"`
	Team        int        `json:"team"`
	Position    geom.Point `json:"position" gorm:"type:geometry"`
	AngleFacing float64    `json:"angleFacing"`
	Speed       int        `json:"speed"`
	Movement    string     `json:"movement" gorm:"size:16"`
	Action      string     `json:"action" gorm:"size:16"`
}

func (*PlayerState) TableName() string {
	return "player_states"
}

// PassIntent is a pass a player asked for. Payload keeps the full intent as JSON.
type PassIntent struct {
	ID       uint           `json:"id" gorm:"primarykey;autoIncrement;"`
	Time     time.Time      `json:"time"`
	MatchID  uint           `json:"matchId" gorm:"index:idx_passintent_match_id"`
	Tick     uint           `json:"tick"`
	PlayerID uint16         `json:"playerId" gorm:"index:idx_passintent_player_id"`
	Team     int            `json:"team"`
	Angle    float64        `json:"angle"`
	From     geom.Point     `json:"from" gorm:"type:geometry"`
	Payload  datatypes.JSON `json:"payload" gorm:"default:'{}'"`
}

func (*PassIntent) TableName() string {
	return "pass_intents"
}

// MovementSwap records a player switching movement variant.
type MovementSwap struct {
	ID           uint      `json:"id" gorm:"primarykey;autoIncrement;"`
	Time         time.Time `json:"time"`
	MatchID      uint      `json:"matchId" gorm:"index:idx_movementswap_match_id"`
	Tick         uint      `json:"tick"`
	PlayerID     uint16    `json:"playerId" gorm:"index:idx_movementswap_player_id"`
	FromMovement string    `json:"from" gorm:"size:16"`
	ToMovement   string    `json:"to" gorm:"size:16"`
}

func (*MovementSwap) TableName() string {
	return "movement_swaps"
}

// Lunge is a tackle translation.
type Lunge struct {
	ID       uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	Time     time.Time  `json:"time"`
	MatchID  uint       `json:"matchId" gorm:"index:idx_lunge_match_id"`
	Tick     uint       `json:"tick"`
	PlayerID uint16     `json:"playerId" gorm:"index:idx_lunge_player_id"`
	Team     int        `json:"team"`
	From     geom.Point `json:"from" gorm:"type:geometry"`
	To       geom.Point `json:"to" gorm:"type:geometry"`
	Angle    float64    `json:"angle"`
}

func (*Lunge) TableName() string {
	return "lunges"
}

// Contact is a lunge that ended on top of another player.
type Contact struct {
	ID        uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	Time      time.Time  `json:"time"`
	MatchID   uint       `json:"matchId" gorm:"index:idx_contact_match_id"`
	Tick      uint       `json:"tick"`
	TacklerID uint16     `json:"tacklerId" gorm:"index:idx_contact_tackler_id"`
	TargetID  uint16     `json:"targetId" gorm:"index:idx_contact_target_id"`
	At        geom.Point `json:"at" gorm:"type:geometry"`
	Distance  float64    `json:"distance"`
}

func (*Contact) TableName() string {
	return "contacts"
}
