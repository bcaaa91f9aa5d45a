package httpserver

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"
)

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("id %q is not a positive integer", c.Param("id"))
	}
	return uint(id), nil
}
