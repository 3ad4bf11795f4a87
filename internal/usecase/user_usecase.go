package usecase

import (
	"context"
	"math"
	"net/url"
	"strconv"
	"strings"

	"health-connect-api/internal/converter"
	"health-connect-api/internal/delivery/dto"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/domain/entity"
	"health-connect-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// DirectoryPageSize is the number of accounts per directory page.
const DirectoryPageSize = 10

const maxDirectoryPage = math.MaxInt / DirectoryPageSize

type UserUsecase interface {
	// ListUsers returns one page of the account directory. Only doctors may
	// list accounts; caller is nil for anonymous requests.
	ListUsers(ctx context.Context, caller *entity.User, req *dto.UserListRequest) (*dto.UserListResponse, error)
}

type userUsecase struct {
	db       repository.Transactor
	log      *logrus.Logger
	userRepo repository.UserRepository
}

func NewUserUsecase(db repository.Transactor, log *logrus.Logger, userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context, caller *entity.User, req *dto.UserListRequest) (*dto.UserListResponse, error) {
	if caller == nil {
		return nil, ErrUnauthorized
	}
	if caller.UserType != entity.UserTypeDoctor {
		return nil, ErrForbidden
	}

	page := 1
	if raw := strings.TrimSpace(req.Page); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fieldError("page", MsgInvalidInteger)
		}
		page = n
	}

	// Pages past maxDirectoryPage would overflow the offset; they are past
	// the end of any table, so pin them there.
	offset := math.MaxInt - DirectoryPageSize
	if page <= maxDirectoryPage {
		offset = (page - 1) * DirectoryPageSize
	}

	filter := &entity.UserFilter{
		UserType: entity.UserType(req.UserType),
		Search:   req.Search,
		Limit:    DirectoryPageSize,
		Offset:   offset,
	}

	users, total, err := u.userRepo.FindAll(ctx, u.db.DB(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	resp := &dto.UserListResponse{
		Results: converter.UsersToResponses(users, middleware.GetMediaBaseFromContext(ctx)),
		Count:   total,
	}
	if int64(filter.Offset+DirectoryPageSize) < total {
		resp.Next = pageLink(page+1, req)
	}
	if page > 1 {
		resp.Previous = pageLink(page-1, req)
	}

	return resp, nil
}

// pageLink renders a relative query string for page, keeping active filters.
func pageLink(page int, req *dto.UserListRequest) *string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	if req.UserType != "" {
		q.Set("user_type", req.UserType)
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	link := "?" + q.Encode()
	return &link
}
