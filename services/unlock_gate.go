package services

import (
	"errors"
	"log"
	"time"

	courseModels "learnsphere/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Unlock policy constants.
const (
	// FreeVideoCount videos at the start of every course are always viewable.
	FreeVideoCount = 3
	// VideoUnlockCost is debited once per (user, video).
	VideoUnlockCost = 10
)

// UnlockResult is the outcome of an Unlock call.
type UnlockResult struct {
	AlreadyUnlocked bool `json:"already_unlocked"`
	CoinsCharged    uint `json:"coins_charged"`
}

// UnlockGate decides per video whether a user may view it and records paid
// unlocks.
type UnlockGate struct {
	db     *gorm.DB
	ledger *RewardLedger
}

func NewUnlockGate(db *gorm.DB, ledger *RewardLedger) *UnlockGate {
	return &UnlockGate{db: db, ledger: ledger}
}

// CanView reports whether the user may view the video at the given ordinal
// position. The first FreeVideoCount videos of a course are always viewable;
// anything later requires a prior unlock record.
func (g *UnlockGate) CanView(userID uint, ordinal int, videoID uint) (bool, error) {
	if ordinal < FreeVideoCount {
		return true, nil
	}

	var count int64
	err := g.db.Model(&courseModels.VideoUnlock{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Unlock charges VideoUnlockCost coins and records permanent access to one
// gated video. Calling it again for an already-unlocked video is a no-op
// success with no charge. The debit happens before the unlock insert; if the
// insert then loses a race against a concurrent unlock of the same video the
// debit is refunded, so the user is never charged twice.
func (g *UnlockGate) Unlock(userID, courseID, videoID uint) (*UnlockResult, error) {
	var video courseModels.Video
	err := g.db.Where("id = ? AND course_id = ? AND is_deleted = false", videoID, courseID).
		First(&video).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	var existing int64
	err = g.db.Model(&courseModels.VideoUnlock{}).
		Where("user_id = ? AND video_id = ?", userID, videoID).
		Count(&existing).Error
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return &UnlockResult{AlreadyUnlocked: true}, nil
	}

	if err := g.ledger.Debit(userID, VideoUnlockCost); err != nil {
		return nil, err
	}

	unlock := courseModels.VideoUnlock{
		UserID:     userID,
		VideoID:    videoID,
		CourseID:   courseID,
		VideoTitle: video.Title,
		UnlockedAt: time.Now(),
	}
	res := g.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "video_id"}},
		DoNothing: true,
	}).Create(&unlock)
	if res.Error != nil {
		// The user has paid without receiving access. Surface the exact
		// failed step; a retry of Unlock is safe once the record exists,
		// and the reconciliation sweep can finish the insert.
		return nil, &PartialWriteError{Step: StepUnlockRecord, Err: res.Error}
	}
	if res.RowsAffected == 0 {
		// A concurrent call inserted the record between our existence
		// check and the debit. Compensate the double charge.
		if err := g.ledger.Credit(userID, VideoUnlockCost); err != nil {
			log.Printf("[UNLOCK-GATE] refund after lost unlock race failed for user %d video %d: %v", userID, videoID, err)
			return nil, &PartialWriteError{Step: StepUnlockRefund, Err: err}
		}
		return &UnlockResult{AlreadyUnlocked: true}, nil
	}

	return &UnlockResult{CoinsCharged: VideoUnlockCost}, nil
}
