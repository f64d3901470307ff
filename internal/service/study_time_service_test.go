package service

import (
	"testing"

	"edumate_backend/internal/util"

	"github.com/stretchr/testify/assert"
)

func TestStudyTimeTrack_RejectsUnknownModule(t *testing.T) {
	svc := NewStudyTimeService(nil)

	err := svc.Track(TrackTimeRequest{StudentID: "stu-1", Module: "s9", Seconds: 60})

	assert.ErrorIs(t, err, util.ErrInvalidModule)
}

func TestStudyTimeTrack_RejectsNonPositiveSeconds(t *testing.T) {
	svc := NewStudyTimeService(nil)

	for _, seconds := range []int{0, -30} {
		err := svc.Track(TrackTimeRequest{StudentID: "stu-1", Module: "s1", Seconds: seconds})
		assert.ErrorIs(t, err, util.ErrInvalidSeconds)
	}
}
