package tracker

import (
	"context"
	"net/http"
)

type GetStudentTodayV1Output struct {
	Data StudentToday

	http.Response
}

func (c Client) GetStudentTodayV1(ctx context.Context) (*GetStudentTodayV1Output, error) {
	var outputData StudentToday
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodGet,
		Path:    "/student/today",
		Output:  &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &GetStudentTodayV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type GetTeacherTodayV1Output struct {
	Data TeacherToday

	http.Response
}

func (c Client) GetTeacherTodayV1(ctx context.Context) (*GetTeacherTodayV1Output, error) {
	var outputData TeacherToday
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodGet,
		Path:    "/teacher/today",
		Output:  &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &GetTeacherTodayV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type ListCourseUnitsV1Output struct {
	Data []CourseUnit

	http.Response
}

func (c Client) ListCourseUnitsV1(ctx context.Context) (*ListCourseUnitsV1Output, error) {
	var outputData []CourseUnit
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodGet,
		Path:    "/uc/list",
		Output:  &outputData,
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &ListCourseUnitsV1Output{
		Data:     outputData,
		Response: outputClient.GetResponse(),
	}, err
}

type HealthcheckV1Output struct {
	http.Response
}

// HealthcheckV1 checks that the tracker is reachable and ready
func (c Client) HealthcheckV1(ctx context.Context) (*HealthcheckV1Output, error) {
	outputClient, err := c.do(request{
		Context: ctx,
		Method:  http.MethodGet,
		Path:    "/readyz",
	})
	if err != nil {
		if outputClient == nil {
			return nil, err
		}
	}
	return &HealthcheckV1Output{Response: outputClient.GetResponse()}, err
}
