package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookcatalog/internal/application/book"
	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/internal/interface/http/dto"
	"github.com/xiebiao/bookcatalog/internal/interface/http/validation"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/response"
)

// BookHandler 图书HTTP处理器
// 设计说明：
// 1. 需要已有图书的接口（show/update/destroy）先显式查询，不存在直接404
// 2. 校验全部通过之后才调用领域服务，校验失败不会修改任何数据
type BookHandler struct {
	bookService      book.Service
	listBooksUseCase *appbook.ListBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(bookService book.Service, listBooksUseCase *appbook.ListBooksUseCase) *BookHandler {
	return &BookHandler{
		bookService:      bookService,
		listBooksUseCase: listBooksUseCase,
	}
}

// Index 图书列表
// @Summary      图书列表
// @Description  按创建时间倒序分页返回图书,每页10条
// @Tags         图书
// @Produce      json
// @Param        page query int false "页码（从1开始，非法值按1处理）"
// @Success      200 {object} dto.BookCollection
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /books [get]
func (h *BookHandler) Index(c *gin.Context) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page: appbook.ParsePage(c.Query("page")),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, dto.NewBookCollection(result.Books, result.Paginator, resourceURL(c)))
}

// Store 创建图书
// @Summary      创建图书
// @Description  所有字段校验通过且ISBN未被占用时创建图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.StoreBookRequest true "图书信息"
// @Success      201 {object} response.Resource{data=dto.BookResource} "创建成功"
// @Failure      400 {object} response.ErrorBody "请求体不是合法JSON"
// @Failure      422 {object} response.ValidationBody "字段校验失败"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /books [post]
func (h *BookHandler) Store(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. 解析请求体 + 字段规则校验
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperrors.ErrBadRequest)
		return
	}
	req, bag, err := dto.DecodeStoreBook(body)
	if err != nil {
		h.decodeError(c, err)
		return
	}

	// 2. ISBN唯一性（字段本身合法时才检查）
	if !bag.Has("isbn") {
		taken, err := h.bookService.ISBNTaken(ctx, req.ISBN, 0)
		if err != nil {
			response.Error(c, err)
			return
		}
		if taken {
			bag.Add("isbn", validation.UniqueMessage("isbn"))
		}
	}

	if !bag.Empty() {
		response.ValidationFailed(c, bag.Message(), bag)
		return
	}

	// 3. 调用领域服务
	b, err := h.bookService.CreateBook(ctx, req.Attributes())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.NewBookResource(b))
}

// Show 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Resource{data=dto.BookResource}
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /books/{id} [get]
func (h *BookHandler) Show(c *gin.Context) {
	b, ok := h.resolveBook(c)
	if !ok {
		return
	}

	response.OK(c, dto.NewBookResource(b))
}

// Update 更新图书
// @Summary      更新图书
// @Description  只修改请求中出现的字段,返回数据库中的最新状态。PUT和PATCH行为相同
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "要修改的字段"
// @Success      200 {object} response.Resource{data=dto.BookResource} "更新成功"
// @Failure      400 {object} response.ErrorBody "请求体不是合法JSON"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      422 {object} response.ValidationBody "字段校验失败"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /books/{id} [put]
// @Router       /books/{id} [patch]
func (h *BookHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. 先确认图书存在（404优先于422）
	existing, ok := h.resolveBook(c)
	if !ok {
		return
	}

	// 2. 解析请求体 + 校验已提供的字段
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperrors.ErrBadRequest)
		return
	}
	req, bag, err := dto.DecodeUpdateBook(body)
	if err != nil {
		h.decodeError(c, err)
		return
	}

	// 3. ISBN唯一性，排除自身
	if req.ISBN.Valid && !bag.Has("isbn") {
		taken, err := h.bookService.ISBNTaken(ctx, req.ISBN.Value, existing.ID)
		if err != nil {
			response.Error(c, err)
			return
		}
		if taken {
			bag.Add("isbn", validation.UniqueMessage("isbn"))
		}
	}

	if !bag.Empty() {
		response.ValidationFailed(c, bag.Message(), bag)
		return
	}

	// 4. 调用领域服务
	updated, err := h.bookService.UpdateBook(ctx, existing, req.Changes())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.NewBookResource(updated))
}

// Destroy 删除图书
// @Summary      删除图书
// @Tags         图书
// @Param        id path int true "图书ID"
// @Success      204 "删除成功"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      500 {object} response.ErrorBody "服务器错误"
// @Router       /books/{id} [delete]
func (h *BookHandler) Destroy(c *gin.Context) {
	existing, ok := h.resolveBook(c)
	if !ok {
		return
	}

	if err := h.bookService.DeleteBook(c.Request.Context(), existing); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// resolveBook 路径参数 → 已存在的图书
// 非数字、0、不存在都返回404，已经写好响应时ok为false
func (h *BookHandler) resolveBook(c *gin.Context) (*book.Book, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		response.Error(c, book.ErrBookNotFound)
		return nil, false
	}

	b, err := h.bookService.GetBook(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return b, true
}

func (h *BookHandler) decodeError(c *gin.Context, err error) {
	if errors.Is(err, validation.ErrMalformedBody) {
		response.Error(c, apperrors.ErrBadRequest)
		return
	}
	response.Error(c, err)
}

// resourceURL 当前请求不带查询参数的完整地址，用于分页链接
func resourceURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.Path
}
