package service

import (
	"testing"

	"github.com/samber/lo"
	"github.com/scoopworks/scoopworks/internal/domain/activitylog"
	ierr "github.com/scoopworks/scoopworks/internal/errors"
	"github.com/scoopworks/scoopworks/internal/testutil"
	"github.com/scoopworks/scoopworks/internal/types"
	"github.com/stretchr/testify/suite"
)

type ActivityServiceSuite struct {
	testutil.BaseServiceTestSuite
	service ActivityService
}

func TestActivityService(t *testing.T) {
	suite.Run(t, new(ActivityServiceSuite))
}

func (s *ActivityServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewActivityService(s.GetStores().ActivityLogRepo, s.GetLogger())
}

func (s *ActivityServiceSuite) TestListActivity() {
	ctx := s.GetContext()
	for i := 0; i < 3; i++ {
		entry := activitylog.NewEntry(ctx, types.ActivityActionInvoiceFinalized, "invoice", []string{"inv_1"})
		s.NoError(s.GetStores().ActivityLogRepo.Append(ctx, entry))
	}

	resp, err := s.service.ListActivity(ctx, nil)
	s.NoError(err)
	s.Equal(3, resp.Pagination.Total)
	s.Len(resp.Items, 3)
	s.Equal(types.ActivityActionInvoiceFinalized, resp.Items[0].Action)
	s.Equal(types.DefaultUserID, resp.Items[0].Actor)
}

func (s *ActivityServiceSuite) TestListActivityPagination() {
	ctx := s.GetContext()
	for i := 0; i < 5; i++ {
		entry := activitylog.NewEntry(ctx, types.ActivityActionInvoiceCreated, "invoice", []string{"inv_1"})
		s.NoError(s.GetStores().ActivityLogRepo.Append(ctx, entry))
	}

	resp, err := s.service.ListActivity(ctx, &types.QueryFilter{
		Limit:  lo.ToPtr(2),
		Offset: lo.ToPtr(0),
	})
	s.NoError(err)
	s.Equal(5, resp.Pagination.Total)
	s.Len(resp.Items, 2)
}

func (s *ActivityServiceSuite) TestListActivityRejectsInvalidFilter() {
	_, err := s.service.ListActivity(s.GetContext(), &types.QueryFilter{
		Limit: lo.ToPtr(0),
	})
	s.Error(err)
	s.True(ierr.IsValidation(err))
}
