package transform_test

import (
	"os"
	"path/filepath"

	"github.com/timeplus-io/chameleon/locsync/transform"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("Mapping", func() {
	var dir string

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "mapping")
		Expect(err).ShouldNot(HaveOccurred())
	})

	AfterEach(func() {
		os.RemoveAll(dir)
	})

	write := func(name string, content string) string {
		path := filepath.Join(dir, name)
		Expect(os.WriteFile(path, []byte(content), 0644)).Should(Succeed())
		return path
	}

	It("loads a yaml mapping", func() {
		path := write("mapping.yaml", "resourceModel: Vehicles\nentityName: Vehicles-Position\n")
		mapping, err := transform.LoadMapping(path, transform.DefaultMapping())
		Expect(err).ShouldNot(HaveOccurred())
		Expect(mapping).Should(Equal(transform.Mapping{ResourceModel: "Vehicles", EntityName: "Vehicles-Position"}))
	})

	It("loads a json mapping and keeps unset fields", func() {
		path := write("mapping.json", `{"entityName":"Collaborateurs-GPS"}`)
		mapping, err := transform.LoadMapping(path, transform.DefaultMapping())
		Expect(err).ShouldNot(HaveOccurred())
		Expect(mapping.ResourceModel).Should(Equal(transform.DefaultResourceModel))
		Expect(mapping.EntityName).Should(Equal("Collaborateurs-GPS"))
	})

	It("rejects other extensions", func() {
		path := write("mapping.toml", `entityName = "x"`)
		_, err := transform.LoadMapping(path, transform.DefaultMapping())
		Expect(err).Should(HaveOccurred())
	})

	It("rejects a mapping that blanks a name", func() {
		path := write("mapping.yml", "resourceModel: \"\"\n")
		_, err := transform.LoadMapping(path, transform.DefaultMapping())
		Expect(err).Should(HaveOccurred())
	})

	It("reports a missing file", func() {
		_, err := transform.LoadMapping(filepath.Join(dir, "absent.yaml"), transform.DefaultMapping())
		Expect(err).Should(HaveOccurred())
	})
})
