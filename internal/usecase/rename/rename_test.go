package rename_test

import (
	"errors"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"learnlog/internal/usecase/rename"
)

var _ = Describe("BatchRename", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "learnlog-rename-test-*")
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	touch := func(name, content string) {
		Expect(os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644)).To(Succeed())
	}

	read := func(name string) string {
		data, err := os.ReadFile(filepath.Join(dir, name))
		Expect(err).NotTo(HaveOccurred())
		return string(data)
	}

	names := func() []string {
		entries, err := os.ReadDir(dir)
		Expect(err).NotTo(HaveOccurred())
		out := make([]string, 0, len(entries))
		for _, e := range entries {
			out = append(out, e.Name())
		}
		return out
	}

	It("renames jpg files in sorted order and leaves other files alone", func() {
		touch("b.JPG", "b")
		touch("a.jpg", "a")
		touch("notes.txt", "notes")

		res, err := rename.BatchRename(dir, rename.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Count()).To(Equal(2))
		Expect(res.Renames).To(Equal([]rename.Rename{
			{From: "a.jpg", To: "image_0.jpg"},
			{From: "b.JPG", To: "image_1.jpg"},
		}))

		Expect(names()).To(ConsistOf("image_0.jpg", "image_1.jpg", "notes.txt"))
		Expect(read("image_0.jpg")).To(Equal("a"))
		Expect(read("image_1.jpg")).To(Equal("b"))
		Expect(read("notes.txt")).To(Equal("notes"))
	})

	It("does not clobber files already named like targets", func() {
		touch("image_1.jpg", "one")
		touch("image_0.jpg", "zero")
		touch("cat.jpg", "cat")

		_, err := rename.BatchRename(dir, rename.Options{})
		Expect(err).NotTo(HaveOccurred())

		Expect(names()).To(ConsistOf("image_0.jpg", "image_1.jpg", "image_2.jpg"))
		Expect(read("image_0.jpg")).To(Equal("cat"))
		Expect(read("image_1.jpg")).To(Equal("zero"))
		Expect(read("image_2.jpg")).To(Equal("one"))
	})

	It("treats files left by an interrupted run as ordinary matches", func() {
		touch(".a.jpg", "A")
		touch(".b.jpg", "B")
		touch(".rename-1-image_1.jpg", "LEFTOVER")

		res, err := rename.BatchRename(dir, rename.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Count()).To(Equal(3))

		Expect(names()).To(ConsistOf("image_0.jpg", "image_1.jpg", "image_2.jpg"))
		Expect(read("image_0.jpg")).To(Equal("A"))
		Expect(read("image_1.jpg")).To(Equal("B"))
		Expect(read("image_2.jpg")).To(Equal("LEFTOVER"))
	})

	Context("when the filesystem fails mid-way", func() {
		failOnCall := func(n int) func() {
			calls := 0
			return rename.SetRenameFunc(func(oldpath, newpath string) error {
				calls++
				if calls == n {
					return errors.New("disk on fire")
				}
				return os.Rename(oldpath, newpath)
			})
		}

		BeforeEach(func() {
			touch("a.jpg", "a")
			touch("b.jpg", "b")
			touch("image_0.jpg", "zero")
		})

		DescribeTable("restores every original name",
			func(failingCall int) {
				restore := failOnCall(failingCall)
				defer restore()

				res, err := rename.BatchRename(dir, rename.Options{})
				Expect(err).To(MatchError(ContainSubstring("disk on fire")))
				Expect(res.Count()).To(BeZero())

				Expect(names()).To(ConsistOf("a.jpg", "b.jpg", "image_0.jpg"))
				Expect(read("a.jpg")).To(Equal("a"))
				Expect(read("b.jpg")).To(Equal("b"))
				Expect(read("image_0.jpg")).To(Equal("zero"))
			},
			Entry("while moving files aside", 2),
			Entry("while placing files at their targets", 5),
		)
	})

	It("refuses when a target belongs to a file outside the set", func() {
		touch("a.png", "a")
		touch("image_0.png.bak", "x")
		Expect(os.Mkdir(filepath.Join(dir, "image_0.png"), 0o755)).To(Succeed())

		_, err := rename.BatchRename(dir, rename.Options{Ext: "png"})
		Expect(err).To(MatchError(rename.ErrTargetExists))
		Expect(read("a.png")).To(Equal("a"))
	})

	It("plans without touching disk on dry run", func() {
		touch("x.jpg", "x")

		res, err := rename.BatchRename(dir, rename.Options{DryRun: true, Prefix: "photo_"})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.DryRun).To(BeTrue())
		Expect(res.Renames).To(Equal([]rename.Rename{{From: "x.jpg", To: "photo_0.jpg"}}))
		Expect(names()).To(ConsistOf("x.jpg"))
	})

	It("reports a missing directory", func() {
		_, err := rename.BatchRename(filepath.Join(dir, "missing"), rename.Options{})
		Expect(err).To(MatchError(rename.ErrDirNotExist))
	})

	It("renames nothing in an empty directory", func() {
		res, err := rename.BatchRename(dir, rename.Options{})
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Count()).To(BeZero())
	})
})
