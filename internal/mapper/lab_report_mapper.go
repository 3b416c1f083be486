package mapper

import (
	"healthlync-be/internal/entity"
	"healthlync-be/internal/model"
)

type LabReportMapper struct{}

func NewLabReportMapper() *LabReportMapper {
	return &LabReportMapper{}
}

func (m *LabReportMapper) ToEntity(r *model.LabReport) *entity.LabReport {
	if r == nil {
		return nil
	}

	values := make([]*entity.LabValue, len(r.Values))
	for i := range r.Values {
		values[i] = m.ValueToEntity(&r.Values[i])
	}

	return &entity.LabReport{
		Id:        r.Id,
		UserId:    r.UserId,
		FileName:  r.FileName,
		RawText:   r.RawText,
		TestDate:  r.TestDate,
		CreatedAt: r.CreatedAt,
		Values:    values,
	}
}

func (m *LabReportMapper) ToModel(r *entity.LabReport) *model.LabReport {
	if r == nil {
		return nil
	}

	values := make([]model.LabValue, len(r.Values))
	for i, v := range r.Values {
		values[i] = *m.ValueToModel(v)
	}

	return &model.LabReport{
		Id:        r.Id,
		UserId:    r.UserId,
		FileName:  r.FileName,
		RawText:   r.RawText,
		TestDate:  r.TestDate,
		CreatedAt: r.CreatedAt,
		Values:    values,
	}
}

func (m *LabReportMapper) ValueToEntity(v *model.LabValue) *entity.LabValue {
	if v == nil {
		return nil
	}
	return &entity.LabValue{
		Id:             v.Id,
		LabReportId:    v.LabReportId,
		TestName:       v.TestName,
		Value:          v.Value,
		Unit:           v.Unit,
		RawText:        v.RawText,
		ReferenceRange: v.ReferenceRange,
		MatchType:      v.MatchType,
		CreatedAt:      v.CreatedAt,
	}
}

func (m *LabReportMapper) ValueToModel(v *entity.LabValue) *model.LabValue {
	if v == nil {
		return nil
	}
	return &model.LabValue{
		Id:             v.Id,
		LabReportId:    v.LabReportId,
		TestName:       v.TestName,
		Value:          v.Value,
		Unit:           v.Unit,
		RawText:        v.RawText,
		ReferenceRange: v.ReferenceRange,
		MatchType:      v.MatchType,
		CreatedAt:      v.CreatedAt,
	}
}
