package schedule

import (
	"context"

	"coachhub/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultScheduleService) CreateServiceType(ctx context.Context, caller models.Caller, st models.ServiceType) (*models.ServiceType, error) {
	if err := requireAdmin(caller); err != nil {
		return nil, err
	}
	if st.MaxParticipants == 0 {
		st.MaxParticipants = 1
	}
	if err := validate.Struct(st); err != nil {
		return nil, structError(err)
	}

	st.ID = uuid.New().String()
	st.CreatedAt = s.now().UTC()
	if err := s.ServiceTypes.Create(ctx, &st); err != nil {
		return nil, err
	}
	s.logger().Info("Service type created", zap.String("serviceTypeID", st.ID), zap.String("name", st.Name))
	return &st, nil
}

func (s *DefaultScheduleService) DeleteServiceType(ctx context.Context, caller models.Caller, id string) error {
	if err := requireAdmin(caller); err != nil {
		return err
	}
	if err := s.ServiceTypes.Delete(ctx, id); err != nil {
		return translate(err, "service type "+id)
	}
	return nil
}

func (s *DefaultScheduleService) ListServiceTypes(ctx context.Context, caller models.Caller) ([]models.ServiceTypeView, error) {
	list, err := s.ServiceTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]models.ServiceTypeView, 0, len(list))
	for _, st := range list {
		views = append(views, models.ServiceTypeView{ServiceType: st, Price: st.PriceFor(caller)})
	}
	return views, nil
}

func (s *DefaultScheduleService) GetServiceType(ctx context.Context, caller models.Caller, id string) (*models.ServiceTypeView, error) {
	st, err := s.ServiceTypes.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, "service type "+id)
	}
	return &models.ServiceTypeView{ServiceType: *st, Price: st.PriceFor(caller)}, nil
}
