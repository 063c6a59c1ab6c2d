package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/i474232898/temperature-dashboard/internal/climate"
	"github.com/i474232898/temperature-dashboard/internal/dashboard"
	"github.com/i474232898/temperature-dashboard/internal/dataset"
	"github.com/i474232898/temperature-dashboard/internal/store"
	"github.com/i474232898/temperature-dashboard/internal/weather"
)

// TokenHeader carries the OpenWeatherMap API key on live requests.
const TokenHeader = "X-API-Key"

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	v1.Post("/datasets", func(c *fiber.Ctx) error {
		header, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "multipart field \"file\" is required")
		}
		f, err := header.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "failed to read uploaded file")
		}
		defer f.Close()

		res, err := service.Upload(f)
		if err != nil {
			return mapError(err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	})

	v1.Get("/datasets/:id/cities", func(c *fiber.Ctx) error {
		id, err := parseDatasetID(c)
		if err != nil {
			return err
		}

		cities, err := service.Cities(id)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(fiber.Map{
			"id":     id,
			"cities": cities,
		})
	})

	v1.Get("/datasets/:id/report", func(c *fiber.Ctx) error {
		id, err := parseDatasetID(c)
		if err != nil {
			return err
		}
		q, err := parseCityQuery(c)
		if err != nil {
			return err
		}

		report, err := service.Report(id, q.City)
		if err != nil {
			return mapError(err)
		}
		return c.JSON(report)
	})

	v1.Get("/datasets/:id/current", func(c *fiber.Ctx) error {
		id, err := parseDatasetID(c)
		if err != nil {
			return err
		}
		q, err := parseCityQuery(c)
		if err != nil {
			return err
		}

		check, err := service.CurrentTemperature(c.UserContext(), id, q.City, tokenFrom(c))
		if err != nil {
			var apiErr *weather.APIError
			if errors.As(err, &apiErr) {
				return upstreamError(c, apiErr)
			}
			return mapLiveError(err)
		}
		return c.JSON(check)
	})

	v1.Delete("/datasets/:id", func(c *fiber.Ctx) error {
		id, err := parseDatasetID(c)
		if err != nil {
			return err
		}
		if err := service.Delete(id); err != nil {
			return mapError(err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/token/check", func(c *fiber.Ctx) error {
		var req tokenRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		ok, err := service.CheckToken(c.UserContext(), req.Token)
		if err != nil {
			var apiErr *weather.APIError
			if errors.As(err, &apiErr) {
				return c.JSON(fiber.Map{
					"valid":    false,
					"error":    apiErr.Message,
					"upstream": string(apiErr.Body),
				})
			}
			return mapLiveError(err)
		}
		return c.JSON(fiber.Map{"valid": ok})
	})
}

// RegisterMetrics exposes the registry in the Prometheus text format.
func RegisterMetrics(app *fiber.App, reg *prometheus.Registry) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// mapError translates domain errors into HTTP errors.
func mapError(err error) error {
	var rowErr *dataset.RowError
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "dataset not found or expired")
	case errors.Is(err, dataset.ErrCityNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.As(err, &rowErr),
		errors.Is(err, dataset.ErrMissingColumn),
		errors.Is(err, dataset.ErrEmptyDataset),
		errors.Is(err, dataset.ErrMalformedCSV):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, weather.ErrUnknownCity):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrMissingToken):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, climate.ErrSeasonNotProfiled):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// mapLiveError is mapError for calls that reach the weather provider:
// anything not recognized as a domain error came from upstream.
func mapLiveError(err error) error {
	var e *fiber.Error
	if mapped := mapError(err); errors.As(mapped, &e) && e.Code != fiber.StatusInternalServerError {
		return mapped
	}
	return fiber.NewError(fiber.StatusBadGateway, err.Error())
}

func upstreamError(c *fiber.Ctx, apiErr *weather.APIError) error {
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error":          true,
		"message":        apiErr.Error(),
		"upstreamStatus": apiErr.StatusCode,
		"upstream":       string(apiErr.Body),
	})
}

// datasetParam identifies an uploaded dataset.
type datasetParam struct {
	ID string `validate:"required,uuid"`
}

func parseDatasetID(c *fiber.Ctx) (string, error) {
	p := datasetParam{ID: c.Params("id")}
	if err := validate.Struct(p); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid dataset id")
	}
	return p.ID, nil
}

// cityQuery holds query parameters for selecting a city.
type cityQuery struct {
	City string `validate:"required"`
}

func parseCityQuery(c *fiber.Ctx) (cityQuery, error) {
	q := cityQuery{City: c.Query("city")}
	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return q, nil
}

// tokenRequest is the body of the token check endpoint.
type tokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// tokenFrom reads the API key from the header, falling back to the appid query parameter.
func tokenFrom(c *fiber.Ctx) string {
	if t := c.Get(TokenHeader); t != "" {
		return t
	}
	return c.Query("appid")
}
